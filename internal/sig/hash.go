package sig

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainSignature = "strider/signature/v1"
	DomainPlan      = "strider/plan/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// KernelSignature computes the content-addressed signature of an inferred
// kernel: dispatch kind, workunit name, policy variant, and the full
// parameter annotation map. Two dispatches with identical signatures would
// compile to the same kernel, so the signature keys the compilation cache.
func KernelSignature(kind, workunit, policyKind string, annotations map[string]string) (string, error) {
	annObj := make(Object, len(annotations))
	for param, descriptor := range annotations {
		annObj[param] = String(descriptor)
	}

	obj := Object{
		"kind":        String(kind),
		"workunit":    String(workunit),
		"policy":      String(policyKind),
		"annotations": annObj,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("KernelSignature: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSignature, canonical), nil
}

// PlanID computes the content-addressed ID of a dispatch plan.
// Stable across restarts given the same token, signature, and seq.
func PlanID(token, signatureHash string, seq int64) (string, error) {
	obj := Object{
		"token":     String(token),
		"signature": String(signatureHash),
		"seq":       Int(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("PlanID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainPlan, canonical), nil
}
