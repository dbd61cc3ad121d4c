// Package entity resolves the merged document for one application directory.
package entity

import (
	"path/filepath"

	"github.com/jonathan/application-generator/internal/locate"
	"github.com/jonathan/application-generator/internal/rendering"
	"github.com/jonathan/application-generator/internal/structdata"
)

// Entity is one recipient directory under the applications root.
type Entity struct {
	Name string
	Dir  string
}

// FromDir builds an Entity named after its directory.
func FromDir(dir string) Entity {
	return Entity{Name: filepath.Base(dir), Dir: dir}
}

// Resolver merges the template for individual entities.
type Resolver struct {
	Data       *structdata.Loader
	BodySuffix string
	Artifacts  Artifacts
	// Escape LaTeX-escapes profile and address values before insertion.
	Escape bool
}

// NewResolver creates a Resolver reading addresses with data and bodies with bodySuffix.
func NewResolver(data *structdata.Loader, bodySuffix string, artifacts Artifacts) *Resolver {
	return &Resolver{Data: data, BodySuffix: bodySuffix, Artifacts: artifacts}
}

// Address loads the entity's address record.
func (r *Resolver) Address(e Entity) (structdata.Record, error) {
	record, err := r.Data.Load(e.Dir)
	if err != nil {
		return structdata.Record{}, &Error{Dir: e.Dir, Cause: err}
	}
	return record, nil
}

// Body loads the entity's free text.
func (r *Resolver) Body(e Entity) (string, error) {
	path, err := locate.Required(e.Dir, r.BodySuffix)
	if err != nil {
		return "", &Error{Dir: e.Dir, Cause: err}
	}
	text, err := locate.ReadText(path)
	if err != nil {
		return "", &Error{Dir: e.Dir, Cause: err}
	}
	return text, nil
}

// Chain builds the substitutions for e in their fixed order: personal data,
// address, free text, signature, curriculum, certificates.
func (r *Resolver) Chain(e Entity, profile structdata.Record) (*rendering.Chain, error) {
	chain := rendering.NewChain()

	if err := r.bind(chain, profile, rendering.PersonalBindings); err != nil {
		return nil, &Error{Dir: e.Dir, Cause: err}
	}

	address, err := r.Address(e)
	if err != nil {
		return nil, err
	}
	if err := r.bind(chain, address, rendering.AddressBindings); err != nil {
		return nil, &Error{Dir: e.Dir, Cause: err}
	}

	body, err := r.Body(e)
	if err != nil {
		return nil, err
	}

	return chain.
		Add(rendering.TokenText, body).
		Add(rendering.TokenSignature, r.Artifacts.Signature).
		Add(rendering.TokenCurriculum, r.Artifacts.Curriculum).
		Add(rendering.TokenCertificates, r.Artifacts.CertificateBlock()), nil
}

// Resolve returns the fully merged document text for e.
func (r *Resolver) Resolve(e Entity, profile structdata.Record, template string) (string, error) {
	chain, err := r.Chain(e, profile)
	if err != nil {
		return "", err
	}
	return chain.Apply(template), nil
}

func (r *Resolver) bind(chain *rendering.Chain, record structdata.Record, bindings []rendering.Binding) error {
	for _, b := range bindings {
		value, err := record.Field(b.Key)
		if err != nil {
			return err
		}
		if r.Escape {
			value = rendering.EscapeLaTeX(value)
		}
		chain.Add(b.Token, value)
	}
	return nil
}
