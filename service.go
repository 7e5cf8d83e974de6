package winscm

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Service owns a single live handle to a named service. The handle is
// released by Close; after that every operation fails with an InvalidHandle
// error of the operation's family. Concurrent calls on the same Service are
// not supported; distinct Services are independent.
type Service struct {
	sys    system
	handle handleID
	name   string

	pollInterval time.Duration
}

// Name returns the service name this handle was opened or created with.
func (s *Service) Name() string {
	return s.name
}

// Close releases the service handle. It is idempotent; only the first call
// closes.
func (s *Service) Close() error {
	if s.handle == 0 {
		return nil
	}
	errno := s.sys.CloseServiceHandle(s.handle)
	s.handle = 0
	if errno != 0 {
		return fmt.Errorf("winscm: closing service %q: error %d", s.name, uint32(errno))
	}
	return nil
}

// State queries the live status of the service and returns its decoded
// current state.
func (s *Service) State() (ServiceState, error) {
	if s.handle == 0 {
		return 0, &QueryServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[State] service handle released"}
	}
	raw, errno := s.sys.QueryServiceStatus(s.handle)
	if errno != 0 {
		return 0, newQueryServiceError(errno, "[State] QueryServiceStatus failed")
	}
	state, qerr := serviceStateFromRaw(raw)
	if qerr != nil {
		return 0, qerr
	}
	return state, nil
}

// config reads the stored configuration record using the two-call sizing
// protocol: a nil-buffer probe learns the required length, then a second
// call fills an exactly-sized buffer. The returned buffer backs the string
// pointers inside the record and must be kept alive until they are done
// with.
func (s *Service) config() (rawServiceConfig, []byte, *QueryServiceError) {
	if s.handle == 0 {
		return rawServiceConfig{}, nil, &QueryServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[Config] service handle released"}
	}

	var cfg rawServiceConfig
	needed, errno := s.sys.QueryServiceConfig(s.handle, nil, &cfg)
	if errno != 0 && errno != ErrnoInsufficientBuffer {
		return rawServiceConfig{}, nil, newQueryServiceError(errno, "[Config] QueryServiceConfigW sizing call failed")
	}

	buf := make([]byte, needed)
	if _, errno = s.sys.QueryServiceConfig(s.handle, buf, &cfg); errno != 0 {
		return rawServiceConfig{}, nil, newQueryServiceError(errno, "[Config] QueryServiceConfigW failed")
	}
	return cfg, buf, nil
}

// StartType reads the stored configuration and returns the decoded start
// type.
func (s *Service) StartType() (ServiceStartType, error) {
	cfg, _, qerr := s.config()
	if qerr != nil {
		return 0, qerr
	}
	startType, qerr := serviceStartTypeFromRaw(cfg.startType)
	if qerr != nil {
		return 0, qerr
	}
	return startType, nil
}

// Config reads the full stored configuration. Unrecognized numeric values
// in the record surface as a QueryServiceError with code 0 rather than
// being coerced.
func (s *Service) Config() (ServiceConfig, error) {
	raw, buf, qerr := s.config()
	if qerr != nil {
		return ServiceConfig{}, qerr
	}

	serviceType, qerr := serviceTypeFromRaw(raw.serviceType)
	if qerr != nil {
		return ServiceConfig{}, qerr
	}
	startType, qerr := serviceStartTypeFromRaw(raw.startType)
	if qerr != nil {
		return ServiceConfig{}, qerr
	}
	errorControl, qerr := serviceErrorControlFromRaw(raw.errorControl)
	if qerr != nil {
		return ServiceConfig{}, qerr
	}

	cfg := ServiceConfig{
		ServiceName:  s.name,
		DisplayName:  stringFromWide(raw.displayName),
		BinaryPath:   stringFromWide(raw.binaryPathName),
		ServiceType:  serviceType,
		StartType:    startType,
		ErrorControl: errorControl,
	}
	runtime.KeepAlive(buf)
	return cfg, nil
}

// UpdateConfig rewrites the service type, start type, error control, binary
// path, and display name from cfg. The load-order group, tag id,
// dependencies, start account, and password are left unchanged.
func (s *Service) UpdateConfig(cfg ServiceConfig) error {
	if s.handle == 0 {
		return &UpdateServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[UpdateConfig] service handle released"}
	}

	display, err := wideString(cfg.DisplayName)
	if err != nil {
		return &UpdateServiceError{Kind: KindInvalidParameter, Code: 0,
			Context: "[UpdateConfig] invalid display name"}
	}
	binary, err := wideString(cfg.BinaryPath)
	if err != nil {
		return &UpdateServiceError{Kind: KindInvalidParameter, Code: 0,
			Context: "[UpdateConfig] invalid binary path"}
	}

	errno := s.sys.ChangeServiceConfig(s.handle,
		uint32(cfg.ServiceType), uint32(cfg.StartType), uint32(cfg.ErrorControl),
		binary, nil, nil, nil, nil, nil, display)
	if errno != 0 {
		return newUpdateServiceError(errno, "[UpdateConfig] ChangeServiceConfigW failed")
	}
	return nil
}

// SetStartType rewrites the stored configuration with only the start type
// replaced. Every other field, including the tag id, is read back first and
// passed through unchanged. A failure to read the current configuration
// surfaces as KindAccessDenied with the OS code attached.
func (s *Service) SetStartType(startType ServiceStartType) error {
	if s.handle == 0 {
		return &UpdateServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[SetStartType] service handle released"}
	}

	raw, buf, qerr := s.config()
	if qerr != nil {
		return &UpdateServiceError{Kind: KindAccessDenied, Code: qerr.Code,
			Context: "[SetStartType] reading current config failed"}
	}

	tagID := raw.tagID
	errno := s.sys.ChangeServiceConfig(s.handle,
		raw.serviceType, uint32(startType), raw.errorControl,
		raw.binaryPathName, raw.loadOrderGroup, &tagID,
		raw.dependencies, raw.serviceStartName, nil, raw.displayName)
	runtime.KeepAlive(buf)
	if errno != 0 {
		return newUpdateServiceError(errno, "[SetStartType] ChangeServiceConfigW failed")
	}
	return nil
}

// Delete marks the service for deletion. The OS may defer actual removal
// until the last handle closes and the service is stopped.
func (s *Service) Delete() error {
	if s.handle == 0 {
		return &DeleteServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[Delete] service handle released"}
	}
	if errno := s.sys.DeleteService(s.handle); errno != 0 {
		return newDeleteServiceError(errno, "[Delete] DeleteService failed")
	}
	return nil
}

// Start issues a start command. It returns as soon as the SCM accepts the
// command; the service may still be in StartPending.
func (s *Service) Start() error {
	if s.handle == 0 {
		return &ControlServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[Start] service handle released"}
	}
	if errno := s.sys.StartService(s.handle); errno != 0 {
		return newControlServiceError(errno, "[Start] StartServiceW failed")
	}
	return nil
}

// Stop sends the stop control code.
func (s *Service) Stop() error {
	return s.control(serviceControlStop, "[Stop]")
}

// Pause sends the pause control code.
func (s *Service) Pause() error {
	return s.control(serviceControlPause, "[Pause]")
}

// Continue sends the continue control code, resuming a paused service.
func (s *Service) Continue() error {
	return s.control(serviceControlContinue, "[Continue]")
}

func (s *Service) control(code uint32, op string) error {
	if s.handle == 0 {
		return &ControlServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: op + " service handle released"}
	}
	if errno := s.sys.ControlService(s.handle, code); errno != 0 {
		return newControlServiceError(errno, op+" ControlService failed")
	}
	return nil
}

// StartBlocking starts the service and polls until it is running.
func (s *Service) StartBlocking(ctx context.Context) error {
	return s.controlBlocking(ctx, StateRunning, s.Start)
}

// StopBlocking stops the service and polls until it is stopped.
func (s *Service) StopBlocking(ctx context.Context) error {
	return s.controlBlocking(ctx, StateStopped, s.Stop)
}

// PauseBlocking pauses the service and polls until it is paused.
func (s *Service) PauseBlocking(ctx context.Context) error {
	return s.controlBlocking(ctx, StatePaused, s.Pause)
}

// ContinueBlocking resumes the service and polls until it is running.
func (s *Service) ContinueBlocking(ctx context.Context) error {
	return s.controlBlocking(ctx, StateRunning, s.Continue)
}

// controlBlocking issues the control, then polls the live state at the poll
// interval until it equals target. There is no internal timeout; ctx is the
// caller's cancellation hook, and its error is returned as-is. A state
// query failure mid-poll is reported through the control family as
// KindUnknown carrying the last OS code.
func (s *Service) controlBlocking(ctx context.Context, target ServiceState, control func() error) error {
	if err := control(); err != nil {
		return err
	}

	interval := s.pollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		state, err := s.State()
		if err != nil {
			var code Errno
			var qerr *QueryServiceError
			if errors.As(err, &qerr) {
				code = qerr.Code
			}
			return &ControlServiceError{Kind: KindUnknown, Code: code,
				Context: "[controlBlocking] failed to get service state"}
		}
		if state == target {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
