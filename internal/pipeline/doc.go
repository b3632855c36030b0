// Package pipeline provides a framework for executing analysis steps in
// sequence.
//
// The pipeline pattern is used to process credential dumps through
// multiple stages: parsing, correlation classification, entropy
// analysis, and keyboard-pattern detection. Each stage is implemented
// as a Step that receives the current report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of analyses without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for large dump files
//
// The pipeline supports both individual dump analysis and batch
// processing with concurrency control using errgroup.
package pipeline
