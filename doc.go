// Package winscm provides a native Go library for administering Windows
// services through the Service Control Manager, without shelling out to
// sc.exe.
//
// The core functionality centers around two types. ServiceManager owns a
// handle to the SCM database and produces Service values; Service owns a
// handle to a single registered service and exposes configuration, control,
// and lifecycle operations:
//
//	manager, err := winscm.OpenManager()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	svc, err := manager.CreateOrOpen(winscm.NewServiceConfig(
//	    "mydriver", "My Driver", `C:\Windows\system32\drivers\mydriver.sys`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	// Start the service and wait until it is running.
//	err = svc.StartBlocking(context.Background())
//
//	state, err := svc.State()
//	fmt.Printf("service state: %v\n", state)
//
// # Error Taxonomy
//
// Every operation family reports failures through its own error type
// (OpenServiceError, CreateServiceError, ControlServiceError, and so on).
// Each carries the Win32 error code and a context string identifying the
// failing call, so callers can match on the family relevant to the
// operation they invoked:
//
//	if err := svc.Start(); err != nil {
//	    var cerr *winscm.ControlServiceError
//	    if errors.As(err, &cerr) && cerr.Kind == winscm.KindServiceAlreadyRunning {
//	        // already up, nothing to do
//	    }
//	}
//
// # Handle Ownership
//
// Each ServiceManager and each Service exclusively owns exactly one OS
// handle, released by Close. A Service outlives the manager that produced
// it; closing the manager does not invalidate prior service handles.
// Operations on a released handle fail with an InvalidHandle error rather
// than touching a stale handle.
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Zero external process spawning (no exec of sc.exe or net.exe)
//   - Direct calls into the advapi32 service control surface
//   - Context-aware blocking operations with caller-owned cancellation
//   - Type safety (no string-based states or raw numeric error codes)
//
// The blocking control variants poll the service state at a fixed interval
// and carry no internal timeout; bound them with a context deadline at the
// call site. Batch is included because fleet operations over many services
// tend to reimplement the same semaphore-and-collect pattern; it remains
// optional and everything it does can be replicated with Service values
// directly.
package winscm
