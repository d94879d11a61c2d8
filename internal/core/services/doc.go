// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The question pipeline is Retriever -> Composer -> StreamBridge, run
// once per question against a freshly loaded corpus.
package services
