// Package prompt acquires and validates the watermark settings from an
// interactive console.
//
// A Session asks one question per line, in a fixed order, and validates each
// answer before moving on because later questions depend on earlier answers:
//
//  1. Base image filename
//  2. Watermark image filename (must fit inside the base image)
//  3. Whether to use the watermark's alpha channel (only for watermarks with one)
//  4. An optional transparency color (only for watermarks without alpha)
//  5. Blend weight, 0-100
//  6. Placement method, "single" or "grid"
//  7. Position "x y" (single placement only)
//  8. Output filename ending in ".jpg" or ".png"
//
// Each answer is checked by a pure Parse or Check function. The first failure
// stops the session and is returned as an *Error whose ExitCode identifies the
// question that failed. Nothing is retried.
package prompt
