// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle (load the
// experiment and project, run the batch, publish the results), decoupled from
// any specific entrypoint like a CLI.
package app
