// Package schedsim simulates how an operating system schedules user
// processes on one CPU over a tiny word-addressed memory.
//
// Programs are plain text files of instructions. Each tick the engine admits
// arriving processes, dispatches one under the configured discipline (FCFS,
// round robin or a four level feedback queue) and executes exactly one
// instruction. Processes contend for three named mutexes and may suspend the
// simulation to ask for input.
//
//	srv, _ := schedsim.New(schedsim.WithConfig(cfg))
//	rt := srv.Runtime()
//	_ = rt.LoadWorkload(ctx)
//	status, err := rt.Run(ctx)
//	for status == simulation.StatusSuspended {
//		_ = rt.SupplyInput(ctx, "42")
//		status, err = rt.Run(ctx)
//	}
package schedsim
