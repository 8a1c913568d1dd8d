// Package pipeline runs the steps of a conversion in sequence.
//
// A conversion reads a crawler output file, optionally drops blank lines,
// builds and pads the crawl table or counts link occurrences, and writes
// the result. Each stage is a Step that receives the Job and fills in its
// part of it. The pipeline checks for cancellation between steps and
// records which steps ran on the job's model.Conversion.
//
// BatchProcessor converts several independent files concurrently, one
// pipeline per file, with a concurrency limit enforced by errgroup.
package pipeline
