// Package intake implements the "new project" flow: compress the raw
// before/after image files, build a validated project, persist it through the
// facade.
//
// Compression of independent images is performed concurrently using a worker
// pool while the result order is preserved. Image encoding itself is a
// collaborator concern behind the Compressor interface; this package never
// decodes pixels.
package intake
