package harness

import (
	"fmt"
	"sort"
)

// checkExpect compares a step result against its expectation clause and
// returns one message per mismatch. A nil clause checks nothing beyond
// requiring the call to have succeeded when no error was declared.
func checkExpect(step StepResult, expect *ExpectClause) []string {
	var msgs []string

	wantCode := ""
	if expect != nil {
		wantCode = expect.ErrorCode
	}
	if step.ErrorCode != wantCode {
		if wantCode == "" {
			return []string{fmt.Sprintf("unexpected dispatch error %s", step.ErrorCode)}
		}
		if step.ErrorCode == "" {
			return []string{fmt.Sprintf("expected dispatch error %s, call succeeded", wantCode)}
		}
		return []string{fmt.Sprintf("expected dispatch error %s, got %s", wantCode, step.ErrorCode)}
	}
	if expect == nil || wantCode != "" {
		return nil
	}

	if expect.Name != "" && step.Name != expect.Name {
		msgs = append(msgs, fmt.Sprintf("name: expected %q, got %q", expect.Name, step.Name))
	}
	if expect.PolicyKind != "" && step.PolicyKind != expect.PolicyKind {
		msgs = append(msgs, fmt.Sprintf("policy kind: expected %s, got %s", expect.PolicyKind, step.PolicyKind))
	}
	if expect.CacheHit != nil && step.CacheHit != *expect.CacheHit {
		msgs = append(msgs, fmt.Sprintf("cache hit: expected %v, got %v", *expect.CacheHit, step.CacheHit))
	}

	if expect.Annotations != nil {
		for param, want := range expect.Annotations {
			got, ok := step.Annotations[param]
			if !ok {
				msgs = append(msgs, fmt.Sprintf("annotations: missing %s", param))
				continue
			}
			if got != want {
				msgs = append(msgs, fmt.Sprintf("annotations[%s]: expected %q, got %q", param, want, got))
			}
		}
		for param := range step.Annotations {
			if _, ok := expect.Annotations[param]; !ok {
				msgs = append(msgs, fmt.Sprintf("annotations: unexpected %s=%q", param, step.Annotations[param]))
			}
		}
	}

	if expect.PolicyArgs != nil && !sameSet(expect.PolicyArgs, step.PolicyArgs) {
		msgs = append(msgs, fmt.Sprintf("policy args: expected %v, got %v", expect.PolicyArgs, step.PolicyArgs))
	}

	sort.Strings(msgs)
	return msgs
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
