// Package schedule feeds a worker pool from cron expressions.
//
// A Scheduler turns each cron fire into an ordinary pool submission, keeping
// the pool's reject-on-full contract: a fire that lands on a full queue is
// dropped and, optionally, reported via Config.OnReject.
//
//	s, _ := schedule.New(p)
//	id, _ := s.Add("@every 1m", pool.TaskFunc(sweep))
//	s.Start()
//	defer s.Stop()
package schedule
