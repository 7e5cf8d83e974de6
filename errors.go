package winscm

import (
	"fmt"
)

// ErrorKind names the specific condition carried by one of the
// operation-scoped error families. Kinds are only meaningful within the
// family that produced them; there is deliberately no cross-family
// supertype to match on.
type ErrorKind int

const (
	// KindUnknown is the mandatory catchall for codes outside a family's
	// mapping table. The raw code is preserved on the error.
	KindUnknown ErrorKind = iota
	KindAccessDenied
	KindCircularDependency
	KindDatabaseDoesNotExist
	KindDuplicateServiceName
	KindInvalidHandle
	KindInvalidName
	KindInvalidParameter
	KindInvalidServiceAccount
	KindPathNotFound
	KindServiceAlreadyRunning
	KindServiceDatabaseLocked
	KindServiceDependencyDeleted
	KindServiceDependencyFail
	KindServiceDisabled
	KindServiceDoesNotExist
	KindServiceExists
	KindServiceLogonFailed
	KindServiceMarkedForDelete
	KindServiceNoThread
	KindServiceNotActive
	KindServiceRequestTimeout
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindAccessDenied:
		return "access denied"
	case KindCircularDependency:
		return "circular dependency"
	case KindDatabaseDoesNotExist:
		return "database does not exist"
	case KindDuplicateServiceName:
		return "duplicate service name"
	case KindInvalidHandle:
		return "invalid handle"
	case KindInvalidName:
		return "invalid name"
	case KindInvalidParameter:
		return "invalid parameter"
	case KindInvalidServiceAccount:
		return "invalid service account"
	case KindPathNotFound:
		return "path not found"
	case KindServiceAlreadyRunning:
		return "service already running"
	case KindServiceDatabaseLocked:
		return "service database locked"
	case KindServiceDependencyDeleted:
		return "service dependency deleted"
	case KindServiceDependencyFail:
		return "service dependency failed"
	case KindServiceDisabled:
		return "service disabled"
	case KindServiceDoesNotExist:
		return "service does not exist"
	case KindServiceExists:
		return "service already exists"
	case KindServiceLogonFailed:
		return "service logon failed"
	case KindServiceMarkedForDelete:
		return "service marked for deletion"
	case KindServiceNoThread:
		return "service no thread"
	case KindServiceNotActive:
		return "service not active"
	case KindServiceRequestTimeout:
		return "service request timeout"
	default:
		return "unknown"
	}
}

func formatError(family string, kind ErrorKind, code Errno, context string) string {
	return fmt.Sprintf("winscm %s: %s: %d, %s", family, kind, uint32(code), context)
}

func kindFor(table map[Errno]ErrorKind, code Errno) ErrorKind {
	if kind, ok := table[code]; ok {
		return kind
	}
	return KindUnknown
}

// ServiceManagerError reports a failure to open the SCM database or to
// elevate the process token at manager construction.
type ServiceManagerError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

// The ERROR_INVALID_HANDLE entry intentionally maps to
// KindDatabaseDoesNotExist; this mirrors long-standing observable behavior
// and stays until the mapping is formally revised.
var serviceManagerKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:         KindAccessDenied,
	ErrnoDatabaseDoesNotExist: KindDatabaseDoesNotExist,
	ErrnoInvalidHandle:        KindDatabaseDoesNotExist,
}

func newServiceManagerError(code Errno, context string) *ServiceManagerError {
	return &ServiceManagerError{Kind: kindFor(serviceManagerKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *ServiceManagerError) Error() string {
	return formatError("service manager", e.Kind, e.Code, e.Context)
}

// OpenServiceError reports a failure to open an existing service by name.
type OpenServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

var openServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:        KindAccessDenied,
	ErrnoInvalidHandle:       KindInvalidHandle,
	ErrnoInvalidName:         KindInvalidName,
	ErrnoServiceDoesNotExist: KindServiceDoesNotExist,
}

func newOpenServiceError(code Errno, context string) *OpenServiceError {
	return &OpenServiceError{Kind: kindFor(openServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *OpenServiceError) Error() string {
	return formatError("open service", e.Kind, e.Code, e.Context)
}

// CreateServiceError reports a failure to register a new service.
type CreateServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

// Both SERVICE_EXISTS and DUPLICATE_SERVICE_NAME collapse into
// KindServiceExists: either way the name is taken.
var createServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:           KindAccessDenied,
	ErrnoCircularDependency:     KindCircularDependency,
	ErrnoDuplicateServiceName:   KindServiceExists,
	ErrnoInvalidHandle:          KindInvalidHandle,
	ErrnoInvalidName:            KindInvalidName,
	ErrnoInvalidParameter:       KindInvalidParameter,
	ErrnoInvalidServiceAccount:  KindInvalidServiceAccount,
	ErrnoServiceExists:          KindServiceExists,
	ErrnoServiceMarkedForDelete: KindServiceMarkedForDelete,
}

func newCreateServiceError(code Errno, context string) *CreateServiceError {
	return &CreateServiceError{Kind: kindFor(createServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *CreateServiceError) Error() string {
	return formatError("create service", e.Kind, e.Code, e.Context)
}

// UpdateServiceError reports a failure to rewrite a service's stored
// configuration.
type UpdateServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

var updateServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:           KindAccessDenied,
	ErrnoCircularDependency:     KindCircularDependency,
	ErrnoDuplicateServiceName:   KindDuplicateServiceName,
	ErrnoInvalidHandle:          KindInvalidHandle,
	ErrnoInvalidParameter:       KindInvalidParameter,
	ErrnoInvalidServiceAccount:  KindInvalidServiceAccount,
	ErrnoServiceMarkedForDelete: KindServiceMarkedForDelete,
}

func newUpdateServiceError(code Errno, context string) *UpdateServiceError {
	return &UpdateServiceError{Kind: kindFor(updateServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *UpdateServiceError) Error() string {
	return formatError("update service", e.Kind, e.Code, e.Context)
}

// ControlServiceError reports a failure to deliver a start, stop, pause, or
// continue command.
type ControlServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

// PATH_NOT_FOUND and FILE_NOT_FOUND collapse into KindPathNotFound: both
// mean the service image is missing.
var controlServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:             KindAccessDenied,
	ErrnoInvalidHandle:            KindInvalidHandle,
	ErrnoPathNotFound:             KindPathNotFound,
	ErrnoFileNotFound:             KindPathNotFound,
	ErrnoServiceAlreadyRunning:    KindServiceAlreadyRunning,
	ErrnoServiceNotActive:         KindServiceNotActive,
	ErrnoServiceDatabaseLocked:    KindServiceDatabaseLocked,
	ErrnoServiceDependencyDeleted: KindServiceDependencyDeleted,
	ErrnoServiceDependencyFail:    KindServiceDependencyFail,
	ErrnoServiceDisabled:          KindServiceDisabled,
	ErrnoServiceLogonFailed:       KindServiceLogonFailed,
	ErrnoServiceMarkedForDelete:   KindServiceMarkedForDelete,
	ErrnoServiceNoThread:          KindServiceNoThread,
	ErrnoServiceRequestTimeout:    KindServiceRequestTimeout,
}

func newControlServiceError(code Errno, context string) *ControlServiceError {
	return &ControlServiceError{Kind: kindFor(controlServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *ControlServiceError) Error() string {
	return formatError("control service", e.Kind, e.Code, e.Context)
}

// DeleteServiceError reports a failure to mark a service for deletion.
type DeleteServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

var deleteServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:           KindAccessDenied,
	ErrnoServiceMarkedForDelete: KindServiceMarkedForDelete,
	ErrnoInvalidHandle:          KindInvalidHandle,
}

func newDeleteServiceError(code Errno, context string) *DeleteServiceError {
	return &DeleteServiceError{Kind: kindFor(deleteServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *DeleteServiceError) Error() string {
	return formatError("delete service", e.Kind, e.Code, e.Context)
}

// QueryServiceError reports a failure to read a service's live status or
// stored configuration, including decode failures on unrecognized numeric
// values (which carry code 0).
type QueryServiceError struct {
	Kind    ErrorKind
	Code    Errno
	Context string
}

var queryServiceKinds = map[Errno]ErrorKind{
	ErrnoAccessDenied:  KindAccessDenied,
	ErrnoInvalidHandle: KindInvalidHandle,
}

func newQueryServiceError(code Errno, context string) *QueryServiceError {
	return &QueryServiceError{Kind: kindFor(queryServiceKinds, code), Code: code, Context: context}
}

// Error returns a formatted error message.
func (e *QueryServiceError) Error() string {
	return formatError("query service", e.Kind, e.Code, e.Context)
}

// MultiError aggregates multiple errors from bulk operations.
type MultiError struct {
	// Errors contains all accumulated errors.
	Errors []error
}

// Error returns a summary of the accumulated errors.
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil.
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError
// itself.
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
