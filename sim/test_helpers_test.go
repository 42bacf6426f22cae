package sim

// script is a test process that runs one step function per resume and exits
// when the steps run out.
type script struct {
	steps []func(s *Simulator) Command
	i     int
}

func (sc *script) Step(s *Simulator) Command {
	if sc.i >= len(sc.steps) {
		return Exit()
	}
	f := sc.steps[sc.i]
	sc.i++
	return f(s)
}

func newScript(steps ...func(s *Simulator) Command) *script {
	return &script{steps: steps}
}

// grant records who obtained a slot and when.
type grant struct {
	Name string
	Time float64
}

// holder arrives after delay, requests one slot of res, holds it and releases it.
func holder(res *Resource, name string, delay, hold float64, grants *[]grant) Process {
	return newScript(
		func(s *Simulator) Command { return Timeout(delay) },
		func(s *Simulator) Command { return res.Request() },
		func(s *Simulator) Command {
			*grants = append(*grants, grant{Name: name, Time: s.Now()})
			return Timeout(hold)
		},
		func(s *Simulator) Command {
			res.Release()
			return Exit()
		},
	)
}

// storeOp arrives after delay, issues one put or get and records the commit time.
func storeOp(st *LevelStore, name string, delay, amount float64, put bool, done *[]grant) Process {
	return newScript(
		func(s *Simulator) Command { return Timeout(delay) },
		func(s *Simulator) Command {
			if put {
				return st.Put(amount)
			}
			return st.Get(amount)
		},
		func(s *Simulator) Command {
			*done = append(*done, grant{Name: name, Time: s.Now()})
			return Exit()
		},
	)
}
