// Package entity resolves the merged document for one application directory.
package entity

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/application-generator/internal/locate"
)

const (
	// CertificateDirective is the LaTeX inclusion emitted per certificate file
	CertificateDirective = "\\includepdf[pages=-]{%s}\n"
	// SignatureBaseName is preferred over other images in the signature directory
	SignatureBaseName = "signature"
)

// ArtifactSource names where the shared optional artifacts live.
type ArtifactSource struct {
	SignatureDir      string
	SignatureSuffix   string
	CurriculumDir     string
	CurriculumSuffix  string
	CertificatesDir   string
	CertificateSuffix string
}

// Artifacts holds the shared files referenced by every generated document.
// Empty strings and a nil slice mean the artifact is absent.
type Artifacts struct {
	Signature    string
	Curriculum   string
	Certificates []string
}

// LoadArtifacts looks the shared artifacts up once. A missing directory or
// file is not an error.
func LoadArtifacts(src ArtifactSource) (Artifacts, error) {
	var artifacts Artifacts

	signature, ok, err := locate.Optional(src.SignatureDir, SignatureBaseName+src.SignatureSuffix)
	if err == nil && !ok {
		signature, ok, err = locate.First(src.SignatureDir, src.SignatureSuffix)
	}
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to scan signature directory %s: %w", src.SignatureDir, err)
	}
	if ok {
		if artifacts.Signature, err = reference(signature); err != nil {
			return Artifacts{}, err
		}
	}

	curriculum, ok, err := locate.First(src.CurriculumDir, src.CurriculumSuffix)
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to scan curriculum directory %s: %w", src.CurriculumDir, err)
	}
	if ok {
		if artifacts.Curriculum, err = reference(curriculum); err != nil {
			return Artifacts{}, err
		}
	}

	certificates, err := locate.All(src.CertificatesDir, src.CertificateSuffix)
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to scan certificates directory %s: %w", src.CertificatesDir, err)
	}
	for _, path := range certificates {
		ref, err := reference(path)
		if err != nil {
			return Artifacts{}, err
		}
		artifacts.Certificates = append(artifacts.Certificates, ref)
	}

	return artifacts, nil
}

// CertificateBlock renders one inclusion directive per certificate, in order.
func (a Artifacts) CertificateBlock() string {
	var sb strings.Builder
	for _, ref := range a.Certificates {
		fmt.Fprintf(&sb, CertificateDirective, ref)
	}
	return sb.String()
}

// reference turns a path into the absolute, slash-separated form LaTeX expects.
func reference(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return filepath.ToSlash(abs), nil
}
