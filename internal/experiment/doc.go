// Package experiment runs a Monte Carlo batch: many independent simulation
// runs over one baseline project, each with its own clone, its own agents and
// its own seeded random stream.
//
// Runs may execute concurrently on a bounded set of workers. Because every
// run derives its random stream from the batch seed and its run ID, the
// result of a batch does not depend on the number of workers. A run that
// fails is recorded and skipped; the batch carries on.
package experiment
