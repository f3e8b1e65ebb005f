// Package dashboard holds the control panel's state machine, independent of
// any rendering.
//
// A Controller tracks the auth phase, the active section and what each panel
// last received from the backend. Operations never block: anything that
// talks to the backend comes back as a Task. The caller runs tasks off the UI
// loop and hands each resulting Outcome back through Apply on the UI loop,
// which is the only place state changes. Every section carries a generation
// counter, so a slow response for an older request is dropped once a newer
// one has been issued.
package dashboard
