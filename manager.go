package winscm

import (
	"time"
)

// ServiceManager owns a single live handle to the SCM database, opened with
// full access. It produces Service values but does not own them: a Service
// stays valid after the manager that opened it is closed.
type ServiceManager struct {
	sys    system
	handle handleID

	privilege    string
	pollInterval time.Duration
}

// ManagerOption configures a ServiceManager.
type ManagerOption func(*ServiceManager)

// WithPrivilege overrides the process token privilege enabled at
// construction. The default is SeLoadDriverPrivilege.
func WithPrivilege(name string) ManagerOption {
	return func(m *ServiceManager) {
		m.privilege = name
	}
}

// WithPollInterval sets the state-poll cadence inherited by every Service
// this manager produces.
func WithPollInterval(d time.Duration) ManagerOption {
	return func(m *ServiceManager) {
		m.pollInterval = d
	}
}

// OpenManager opens the local SCM database with full access and enables the
// load-driver privilege on the calling process. A privilege-elevation
// failure surfaces as a ServiceManagerError with kind KindAccessDenied and
// the OS code attached.
func OpenManager(opts ...ManagerOption) (*ServiceManager, error) {
	return openManager(newSystem(), opts...)
}

func openManager(sys system, opts ...ManagerOption) (*ServiceManager, error) {
	m := &ServiceManager{
		sys:          sys,
		privilege:    DefaultPrivilege,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	handle, errno := sys.OpenSCManager(scManagerAllAccess)
	if errno != 0 {
		return nil, newServiceManagerError(errno, "[OpenManager] OpenSCManagerW failed")
	}
	m.handle = handle

	if errno := sys.EnablePrivilege(m.privilege); errno != 0 {
		// The SCM handle is not closed on this path; a manager that was
		// never returned never owns it.
		return nil, &ServiceManagerError{
			Kind:    KindAccessDenied,
			Code:    errno,
			Context: "[OpenManager] enabling " + m.privilege + " failed",
		}
	}
	return m, nil
}

func (m *ServiceManager) newService(name string, h handleID) *Service {
	return &Service{
		sys:          m.sys,
		handle:       h,
		name:         name,
		pollInterval: m.pollInterval,
	}
}

// CreateService registers a new service from cfg with full-access rights.
// The load-order group, tag id, dependencies, start account, and password
// are left at their defaults.
func (m *ServiceManager) CreateService(cfg ServiceConfig) (*Service, error) {
	if m.handle == 0 {
		return nil, &CreateServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[CreateService] service manager handle released"}
	}
	if !validServiceName(cfg.ServiceName) {
		return nil, &CreateServiceError{Kind: KindInvalidName, Code: 0,
			Context: "[CreateService] invalid service name"}
	}

	name, err := wideString(cfg.ServiceName)
	if err != nil {
		return nil, &CreateServiceError{Kind: KindInvalidName, Code: 0,
			Context: "[CreateService] invalid service name"}
	}
	display, err := wideString(cfg.DisplayName)
	if err != nil {
		return nil, &CreateServiceError{Kind: KindInvalidName, Code: 0,
			Context: "[CreateService] invalid display name"}
	}
	binary, err := wideString(cfg.BinaryPath)
	if err != nil {
		return nil, &CreateServiceError{Kind: KindInvalidParameter, Code: 0,
			Context: "[CreateService] invalid binary path"}
	}

	handle, errno := m.sys.CreateService(m.handle, name, display, serviceAllAccess,
		uint32(cfg.ServiceType), uint32(cfg.StartType), uint32(cfg.ErrorControl), binary)
	if errno != 0 {
		return nil, newCreateServiceError(errno, "[CreateService] CreateServiceW failed")
	}
	return m.newService(cfg.ServiceName, handle), nil
}

// OpenService opens an existing service by name with full-access rights.
func (m *ServiceManager) OpenService(name string) (*Service, error) {
	if m.handle == 0 {
		return nil, &OpenServiceError{Kind: KindInvalidHandle, Code: 0,
			Context: "[OpenService] service manager handle released"}
	}
	if !validServiceName(name) {
		return nil, &OpenServiceError{Kind: KindInvalidName, Code: 0,
			Context: "[OpenService] invalid service name"}
	}

	name16, err := wideString(name)
	if err != nil {
		return nil, &OpenServiceError{Kind: KindInvalidName, Code: 0,
			Context: "[OpenService] invalid service name"}
	}

	handle, errno := m.sys.OpenService(m.handle, name16, serviceAllAccess)
	if errno != 0 {
		return nil, newOpenServiceError(errno, "[OpenService] OpenServiceW failed")
	}
	return m.newService(name, handle), nil
}

// CreateOrOpen opens the service named by cfg.ServiceName if it exists,
// otherwise creates it from cfg. When the service already exists every cfg
// field other than ServiceName is ignored; call UpdateConfig afterwards if
// cfg must be applied to a pre-existing service.
func (m *ServiceManager) CreateOrOpen(cfg ServiceConfig) (*Service, error) {
	if svc, err := m.OpenService(cfg.ServiceName); err == nil {
		return svc, nil
	}
	return m.CreateService(cfg)
}

// Close releases the SCM handle. It is idempotent; only the first call
// closes.
func (m *ServiceManager) Close() error {
	if m.handle == 0 {
		return nil
	}
	errno := m.sys.CloseServiceHandle(m.handle)
	m.handle = 0
	if errno != 0 {
		return newServiceManagerError(errno, "[Close] CloseServiceHandle failed")
	}
	return nil
}
