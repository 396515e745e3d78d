// Package workshop loads lab definitions and runs their checks.
//
// A workshop is described by a labkit.yaml file: where it lives in
// Harness, which SSO realm backs it, the student seats, and a list of
// checks that validate what students built. Definitions are validated
// against a JSON Schema before decoding, so a typoed field fails with
// the offending path instead of silently decoding to a zero value.
//
// Checks come in three types. Stage and steps checks parse the supplied
// document as a Harness pipeline and verify stage configuration or step
// properties; workspace checks compare an expected tree against the
// document root. Each check may carry a `when` expression over a
// caller-provided variable map, letting one definition serve several
// lab tracks:
//
//	checks:
//	  - name: build stage uses caching
//	    type: stage
//	    stage: Build
//	    when: track == "ci"
//	    expect:
//	      caching:
//	        enabled: true
package workshop
