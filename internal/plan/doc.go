// Package plan expands a validated project name and backend choice into the
// ordered list of filesystem operations that produce a src-layout skeleton.
// File contents are rendered from embedded templates at plan time, so a Plan
// carries everything the writer needs and the writer never touches templates.
package plan
