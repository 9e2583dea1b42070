package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 可被 Runner 托管的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 统一管理 API 与 Worker 的生命周期
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 挂接系统信号后运行全部服务
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		notifyCtx, stop := signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
		ctx = notifyCtx
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 并发启动全部服务，任一服务退出或收到信号后统一停机
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	exit := make(chan error, len(r.services))
	for _, svc := range r.services {
		go func(s Service) {
			if s == nil {
				exit <- errors.New("service is nil")
				return
			}
			if log != nil {
				log.Infow("service_start", "service", s.Name())
			}
			exit <- s.Start(runCtx)
		}(svc)
	}

	var cause error
	select {
	case <-runCtx.Done():
		cause = runCtx.Err()
	case err := <-exit:
		cause = err
	}
	cancel()

	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	r.stopAll(stopCtx, log)

	if errors.Is(cause, context.Canceled) {
		return nil
	}
	return cause
}

func (r *Runner) stopAll(ctx context.Context, log *zap.SugaredLogger) {
	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(ctx); err != nil && log != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
