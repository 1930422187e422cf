// Package harness executes declarative index conformance scenarios.
//
// A scenario is a YAML file scripting edge mutations (link / unlink) against
// a fresh store, with expected rejections and assertions over the resulting
// closure. Scenarios double as regression fixtures: RunWithGolden snapshots
// the final closure table and compares it against a golden file under
// testdata/golden/.
//
// Golden files are regenerated with:
//
//	go test ./internal/harness -update
package harness
