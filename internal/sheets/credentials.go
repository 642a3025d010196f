// Package sheets implements the run table on top of a Google spreadsheet.
package sheets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	authURI           = "https://accounts.google.com/o/oauth2/auth"
	tokenURI          = "https://oauth2.googleapis.com/token"
	authProviderCerts = "https://www.googleapis.com/oauth2/v1/certs"
)

// ErrIncompleteCredentials is returned when the secret bundle lacks the key or the account email.
var ErrIncompleteCredentials = errors.New("service account credentials are incomplete")

// Credentials is the service-account secret bundle. The TOML names match the
// [general] table of the secrets file.
type Credentials struct {
	ProjectID         string `toml:"PROJECT_ID" json:"project_id"`
	PrivateKeyID      string `toml:"PRIVATE_KEY_ID" json:"private_key_id"`
	PrivateKey        string `toml:"PRIVATE_KEY" json:"private_key"`
	ClientEmail       string `toml:"CLIENT_EMAIL" json:"client_email"`
	ClientID          string `toml:"CLIENT_ID" json:"client_id"`
	ClientX509CertURL string `toml:"CLIENT_X509_CERT_URL" json:"client_x509_cert_url"`
}

type secretsFile struct {
	General Credentials `toml:"general"`
}

// LoadCredentials decodes the [general] table of a TOML secrets file.
func LoadCredentials(path string) (Credentials, error) {
	var file secretsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Credentials{}, fmt.Errorf("read secrets %s: %w", path, err)
	}
	if err := file.General.Validate(); err != nil {
		return Credentials{}, err
	}
	return file.General, nil
}

// Validate checks the fields needed to sign token requests.
func (c Credentials) Validate() error {
	if c.PrivateKey == "" || c.ClientEmail == "" {
		return ErrIncompleteCredentials
	}
	return nil
}

// JSON renders the bundle as a service-account key file.
func (c Credentials) JSON() ([]byte, error) {
	return json.Marshal(struct {
		Type                    string `json:"type"`
		AuthURI                 string `json:"auth_uri"`
		TokenURI                string `json:"token_uri"`
		AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
		Credentials
	}{
		Type:                    "service_account",
		AuthURI:                 authURI,
		TokenURI:                tokenURI,
		AuthProviderX509CertURL: authProviderCerts,
		Credentials:             c,
	})
}

// ClientOptions authorizes API clients with the bundle and the spreadsheet and drive scopes.
func (c Credentials) ClientOptions() ([]option.ClientOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.JSON()
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{
		option.WithCredentialsJSON(raw),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
	}, nil
}
