// Package processor implements the batch item processor: the component that
// concurrently transitions every known item to the PROCESSED status within a
// bounded amount of time. Work is fanned out over a shared, fixed-size worker
// pool that lives for the whole process and is shut down on teardown.
package processor
