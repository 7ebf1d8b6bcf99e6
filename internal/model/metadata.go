package model

import "encoding/json"

// SocialMediaURL links a token to one of its social accounts.
type SocialMediaURL struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
}

// TokenMetadata is stored on chain as a JSON string.
type TokenMetadata struct {
	Description     string           `json:"description,omitempty" yaml:"description"`
	SocialMediaUrls []SocialMediaURL `json:"socialMediaUrls,omitempty" yaml:"socialMediaUrls"`
	AuditUrls       []string         `json:"auditUrls,omitempty" yaml:"auditUrls"`
}

// SocialContext records where a deployment was requested from.
type SocialContext struct {
	Interface string `json:"interface" yaml:"interface"`
	Platform  string `json:"platform,omitempty" yaml:"platform"`
	MessageID string `json:"messageId,omitempty" yaml:"messageId"`
	ID        string `json:"id,omitempty" yaml:"id"`
}

// DefaultInterface names deployments that did not set one.
const DefaultInterface = "SDK"

// Encode returns the on-chain string form; an empty metadata encodes as "".
func (m TokenMetadata) Encode() (string, error) {
	if m.Description == "" && len(m.SocialMediaUrls) == 0 && len(m.AuditUrls) == 0 {
		return "", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Encode returns the on-chain string form, defaulting the interface.
func (c SocialContext) Encode() (string, error) {
	if c.Interface == "" {
		c.Interface = DefaultInterface
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
