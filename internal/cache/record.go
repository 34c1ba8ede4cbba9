package cache

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/strider/internal/sig"
)

// KernelRecord is one cached kernel signature.
type KernelRecord struct {
	SignatureHash string            `json:"signature_hash"`
	Kind          string            `json:"kind"`
	Workunit      string            `json:"workunit"`
	PolicyKind    string            `json:"policy_kind"`
	Annotations   map[string]string `json:"annotations"`
	Seq           int64             `json:"seq"`
}

// marshalAnnotations serializes the annotation map as canonical JSON so the
// stored text is byte-stable for a given map.
func marshalAnnotations(annotations map[string]string) (string, error) {
	obj := make(sig.Object, len(annotations))
	for param, descriptor := range annotations {
		obj[param] = sig.String(descriptor)
	}
	b, err := sig.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal annotations: %w", err)
	}
	return string(b), nil
}

// unmarshalAnnotations parses stored annotation JSON back into a map.
func unmarshalAnnotations(data string) (map[string]string, error) {
	annotations := make(map[string]string)
	if err := json.Unmarshal([]byte(data), &annotations); err != nil {
		return nil, fmt.Errorf("unmarshal annotations: %w", err)
	}
	return annotations, nil
}
