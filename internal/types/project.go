// Package types provides type definitions for structured data used throughout the proposal assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProjectInput holds the facts scraped from a marketplace project page.
// Field tags follow the wire format sent by the browser extension.
type ProjectInput struct {
	ClientName     string   `json:"nomeCliente,omitempty"`
	Title          string   `json:"tituloProjeto" validate:"required"`
	Description    string   `json:"descricaoProjeto,omitempty"`
	StackMentioned string   `json:"stackMencionada,omitempty"`
	ClientBudget   *float64 `json:"orcamentoInformado,omitempty" validate:"omitempty,gte=0"`
	ClientDeadline *float64 `json:"prazoInformado,omitempty" validate:"omitempty,gte=0"` // days
	URL            string   `json:"urlProjeto,omitempty"`
}

// Validate validates the ProjectInput using the validator.
func (p *ProjectInput) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Normalize returns a copy with surrounding whitespace trimmed from the
// text fields, so a blank title fails validation.
func (p ProjectInput) Normalize() ProjectInput {
	p.ClientName = strings.TrimSpace(p.ClientName)
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.StackMentioned = strings.TrimSpace(p.StackMentioned)
	p.URL = strings.TrimSpace(p.URL)
	return p
}

// HasBudget reports whether the client supplied a usable budget.
func (p *ProjectInput) HasBudget() bool {
	return p.ClientBudget != nil && *p.ClientBudget != 0
}

// HasDeadline reports whether the client supplied a usable deadline.
func (p *ProjectInput) HasDeadline() bool {
	return p.ClientDeadline != nil && *p.ClientDeadline != 0
}

// Role is the operator's professional area.
type Role string

// Role constants
const (
	RoleDeveloper  Role = "developer"
	RoleCopywriter Role = "copywriter"
	RoleDesigner   Role = "designer"
	RoleTranslator Role = "translator"
	RoleMarketing  Role = "marketing"
	RoleOther      Role = "other"
)

// Links are the operator URLs substituted into the proposal template.
type Links struct {
	Portfolio string `json:"portfolio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Meeting   string `json:"meeting,omitempty"`
}

// UserConfig is the per-caller policy. Core components only ever receive
// a normalized value (see Normalize).
type UserConfig struct {
	Whitelist          []string `json:"whitelist,omitempty"`
	Blacklist          []string `json:"blacklist,omitempty"`
	ValueAdjustment    float64  `json:"valueAdjustment,omitempty" validate:"gte=-100,lte=1000"`
	DeadlineAdjustment float64  `json:"deadlineAdjustment,omitempty" validate:"gte=-100,lte=1000"`
	Role               Role     `json:"userRole,omitempty" validate:"omitempty,oneof=developer copywriter designer translator marketing other"`
	SystemPrompt       string   `json:"systemPrompt,omitempty"`
	ProposalTemplate   string   `json:"proposalTemplate,omitempty"`
	Links              Links    `json:"links,omitempty"`
}

// DefaultUserConfig returns the configuration used when the caller sends none.
func DefaultUserConfig() UserConfig {
	return UserConfig{
		Whitelist: []string{},
		Blacklist: []string{},
		Role:      RoleDeveloper,
	}
}

// Validate validates the UserConfig using the validator.
func (c *UserConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Normalize returns a copy with every unset field defaulted.
// Blank list entries are dropped and the whitelist is de-duplicated
// case-insensitively, keeping the first spelling.
func (c *UserConfig) Normalize() UserConfig {
	if c == nil {
		return DefaultUserConfig()
	}

	out := *c
	out.Whitelist = cleanTerms(c.Whitelist, true)
	out.Blacklist = cleanTerms(c.Blacklist, false)
	if out.Role == "" {
		out.Role = RoleDeveloper
	}
	out.SystemPrompt = strings.TrimSpace(c.SystemPrompt)
	out.Links = Links{
		Portfolio: strings.TrimSpace(c.Links.Portfolio),
		LinkedIn:  strings.TrimSpace(c.Links.LinkedIn),
		Meeting:   strings.TrimSpace(c.Links.Meeting),
	}
	return out
}

func cleanTerms(terms []string, dedupe bool) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if dedupe && seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
	}
	return out
}
