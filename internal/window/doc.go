// Package window creates the single application window that hosts the
// backend's web UI.
//
// A Registrar guarantees at most one live window per name no matter how often
// setup runs. Backends provide the actual window: LorcaBackend opens a Chrome
// app window, HeadlessBackend keeps bookkeeping only and serves --headless
// runs and tests.
package window
