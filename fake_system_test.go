package winscm

import (
	"sync"
)

// fakeSystem is an in-memory Service Control Manager for unit tests. It
// records every call so tests can assert on handle lifecycles, call counts,
// and the exact arguments written through ChangeServiceConfig.
type fakeSystem struct {
	mu sync.Mutex

	nextHandle handleID
	owner      map[handleID]string // open handle -> "" (SCM) or service name
	closeCount map[handleID]int

	services map[string]*fakeService

	// Forced failures; zero means the call succeeds.
	openSCMErr      Errno
	privilegeErr    Errno
	openErr         Errno
	createErr       Errno
	startErr        Errno
	controlErr      Errno
	deleteErr       Errno
	statusErr       Errno
	queryConfigErr  Errno
	changeConfigErr Errno

	// failStatusAfter fails QueryServiceStatus with statusErr only once
	// more than this many calls have been made. Zero applies statusErr
	// unconditionally.
	failStatusAfter int

	// Recorded activity.
	openCalls        int
	createCalls      int
	statusCalls      int
	queryConfigSizes []int // len(buf) per QueryServiceConfig call
	privileges       []string

	// configBytes is the size reported by the sizing probe.
	configBytes uint32

	// keep pins the wide-string blocks handed out through
	// QueryServiceConfig so their pointers stay valid.
	keep [][]uint16
}

// fakeService is the stored record for one registered service.
type fakeService struct {
	displayName  string
	binaryPath   string
	serviceType  uint32
	startType    uint32
	errorControl uint32
	tagID        uint32
	group        string
	dependencies string
	startName    string

	state uint32
	// stateQueue is consumed one entry per status query before state
	// becomes the steady answer.
	stateQueue []uint32

	lastControl uint32
	started     bool

	lastChange *fakeChange
}

// fakeChange captures the raw arguments of one ChangeServiceConfig call.
type fakeChange struct {
	serviceType  uint32
	startType    uint32
	errorControl uint32
	binaryPath   *uint16
	group        *uint16
	tagID        *uint32
	dependencies *uint16
	startName    *uint16
	password     *uint16
	display      *uint16
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		nextHandle:  100,
		owner:       make(map[handleID]string),
		closeCount:  make(map[handleID]int),
		services:    make(map[string]*fakeService),
		configBytes: 64,
	}
}

func (f *fakeSystem) addService(name string, svc *fakeService) *fakeService {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[name] = svc
	return svc
}

func (f *fakeSystem) allocHandle(name string) handleID {
	h := f.nextHandle
	f.nextHandle++
	f.owner[h] = name
	return h
}

func (f *fakeSystem) serviceFor(h handleID) *fakeService {
	name, ok := f.owner[h]
	if !ok {
		return nil
	}
	return f.services[name]
}

func (f *fakeSystem) wide(s string) *uint16 {
	units, err := wideSlice(s)
	if err != nil {
		panic(err)
	}
	f.keep = append(f.keep, units)
	return &units[0]
}

func (f *fakeSystem) OpenSCManager(uint32) (handleID, Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openSCMErr != 0 {
		return 0, f.openSCMErr
	}
	return f.allocHandle(""), 0
}

func (f *fakeSystem) OpenService(_ handleID, name *uint16, _ uint32) (handleID, Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openCalls++
	if f.openErr != 0 {
		return 0, f.openErr
	}
	svcName := stringFromWide(name)
	if _, ok := f.services[svcName]; !ok {
		return 0, ErrnoServiceDoesNotExist
	}
	return f.allocHandle(svcName), 0
}

func (f *fakeSystem) CreateService(_ handleID, name, display *uint16, _, serviceType, startType, errorControl uint32, binaryPath *uint16) (handleID, Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != 0 {
		return 0, f.createErr
	}
	svcName := stringFromWide(name)
	if _, ok := f.services[svcName]; ok {
		return 0, ErrnoServiceExists
	}
	f.services[svcName] = &fakeService{
		displayName:  stringFromWide(display),
		binaryPath:   stringFromWide(binaryPath),
		serviceType:  serviceType,
		startType:    startType,
		errorControl: errorControl,
		state:        uint32(StateStopped),
	}
	return f.allocHandle(svcName), 0
}

func (f *fakeSystem) CloseServiceHandle(h handleID) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCount[h]++
	delete(f.owner, h)
	return 0
}

func (f *fakeSystem) DeleteService(h handleID) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != 0 {
		return f.deleteErr
	}
	name, ok := f.owner[h]
	if !ok {
		return ErrnoInvalidHandle
	}
	delete(f.services, name)
	return 0
}

func (f *fakeSystem) StartService(h handleID) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != 0 {
		return f.startErr
	}
	svc := f.serviceFor(h)
	if svc == nil {
		return ErrnoInvalidHandle
	}
	svc.started = true
	return 0
}

func (f *fakeSystem) ControlService(h handleID, control uint32) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.controlErr != 0 {
		return f.controlErr
	}
	svc := f.serviceFor(h)
	if svc == nil {
		return ErrnoInvalidHandle
	}
	svc.lastControl = control
	return 0
}

func (f *fakeSystem) QueryServiceStatus(h handleID) (uint32, Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != 0 && f.statusCalls > f.failStatusAfter {
		return 0, f.statusErr
	}
	svc := f.serviceFor(h)
	if svc == nil {
		return 0, ErrnoInvalidHandle
	}
	if len(svc.stateQueue) > 0 {
		state := svc.stateQueue[0]
		svc.stateQueue = svc.stateQueue[1:]
		return state, 0
	}
	return svc.state, 0
}

func (f *fakeSystem) QueryServiceConfig(h handleID, buf []byte, cfg *rawServiceConfig) (uint32, Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryConfigSizes = append(f.queryConfigSizes, len(buf))
	if f.queryConfigErr != 0 {
		return 0, f.queryConfigErr
	}
	svc := f.serviceFor(h)
	if svc == nil {
		return 0, ErrnoInvalidHandle
	}
	if uint32(len(buf)) < f.configBytes {
		return f.configBytes, ErrnoInsufficientBuffer
	}
	*cfg = rawServiceConfig{
		serviceType:      svc.serviceType,
		startType:        svc.startType,
		errorControl:     svc.errorControl,
		binaryPathName:   f.wide(svc.binaryPath),
		loadOrderGroup:   f.wide(svc.group),
		tagID:            svc.tagID,
		dependencies:     f.wide(svc.dependencies),
		serviceStartName: f.wide(svc.startName),
		displayName:      f.wide(svc.displayName),
	}
	return f.configBytes, 0
}

func (f *fakeSystem) ChangeServiceConfig(h handleID, serviceType, startType, errorControl uint32,
	binaryPath, group *uint16, tagID *uint32,
	dependencies, startName, password, display *uint16) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changeConfigErr != 0 {
		return f.changeConfigErr
	}
	svc := f.serviceFor(h)
	if svc == nil {
		return ErrnoInvalidHandle
	}
	svc.lastChange = &fakeChange{
		serviceType:  serviceType,
		startType:    startType,
		errorControl: errorControl,
		binaryPath:   binaryPath,
		group:        group,
		tagID:        tagID,
		dependencies: dependencies,
		startName:    startName,
		password:     password,
		display:      display,
	}
	svc.serviceType = serviceType
	svc.startType = startType
	svc.errorControl = errorControl
	if binaryPath != nil {
		svc.binaryPath = stringFromWide(binaryPath)
	}
	if display != nil {
		svc.displayName = stringFromWide(display)
	}
	if group != nil {
		svc.group = stringFromWide(group)
	}
	if dependencies != nil {
		svc.dependencies = stringFromWide(dependencies)
	}
	if startName != nil {
		svc.startName = stringFromWide(startName)
	}
	if tagID != nil {
		svc.tagID = *tagID
	}
	return 0
}

func (f *fakeSystem) EnablePrivilege(name string) Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.privileges = append(f.privileges, name)
	return f.privilegeErr
}

// mustOpenManager opens a manager over the fake, failing the test on error.
func mustOpenManager(t testingT, f *fakeSystem, opts ...ManagerOption) *ServiceManager {
	t.Helper()
	m, err := openManager(f, opts...)
	if err != nil {
		t.Fatalf("openManager: %v", err)
	}
	return m
}

// testingT is the subset of *testing.T the helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
