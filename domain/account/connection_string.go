package account

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Connection string settings
const (
	settingProtocol        = "DefaultEndpointsProtocol"
	settingAccountName     = "AccountName"
	settingAccountKey      = "AccountKey"
	settingEndpointSuffix  = "EndpointSuffix"
	settingBlobEndpoint    = "BlobEndpoint"
	settingQueueEndpoint   = "QueueEndpoint"
	settingTableEndpoint   = "TableEndpoint"
	settingFileEndpoint    = "FileEndpoint"
	settingSAS             = "SharedAccessSignature"
	settingUseDevelopment  = "UseDevelopmentStorage"
	settingDevelopmentHost = "DevelopmentStorageProxyUri"
)

// keyed by lower-case name
var knownSettings = map[string]string{}

var endpointSettings = map[Service]string{
	ServiceBlob:  settingBlobEndpoint,
	ServiceQueue: settingQueueEndpoint,
	ServiceTable: settingTableEndpoint,
	ServiceFile:  settingFileEndpoint,
}

func init() {
	for _, s := range []string{
		settingProtocol, settingAccountName, settingAccountKey, settingEndpointSuffix,
		settingBlobEndpoint, settingQueueEndpoint, settingTableEndpoint, settingFileEndpoint,
		settingSAS, settingUseDevelopment, settingDevelopmentHost,
	} {
		knownSettings[strings.ToLower(s)] = s
	}
}

// Parse turns an Azure Storage connection string into an Account. Any
// problem is reported as a *ConfigurationError.
func Parse(connectionString string) (*Account, error) {
	settings, err := parseSettings(connectionString)
	if err != nil {
		return nil, err
	}

	if _, ok := settings[settingUseDevelopment]; ok {
		return parseDevelopment(settings)
	}

	protocol := DefaultProtocol
	if p, ok := settings[settingProtocol]; ok {
		protocol = strings.ToLower(p)
		if protocol != "http" && protocol != "https" {
			return nil, configErr(settingProtocol, fmt.Sprintf("unsupported protocol %q", p))
		}
	}

	suffix := DefaultEndpointSuffix
	if s, ok := settings[settingEndpointSuffix]; ok {
		suffix = strings.Trim(s, ".")
	}

	name := settings[settingAccountName]
	key := settings[settingAccountKey]
	sas := strings.TrimPrefix(settings[settingSAS], "?")

	acct := &Account{
		name:      name,
		endpoints: make(map[Service]string, len(endpointSettings)),
	}

	switch {
	case key != "" && sas != "":
		return nil, configErr(settingAccountKey, "cannot be combined with "+settingSAS)
	case key != "":
		if name == "" {
			return nil, configErr(settingAccountName, "required with "+settingAccountKey)
		}
		if _, err := base64.StdEncoding.DecodeString(key); err != nil {
			return nil, &ConfigurationError{Setting: settingAccountKey, Reason: "not valid base64", Err: err}
		}
		acct.key = key
		acct.kind = CredentialSharedKey
	case sas != "":
		acct.sas = sas
		acct.kind = CredentialSAS
	case name != "":
		return nil, configErr("", "missing credentials: "+settingAccountName+" requires "+settingAccountKey+" or "+settingSAS)
	default:
		acct.kind = CredentialAnonymous
	}

	explicit := 0
	for svc, setting := range endpointSettings {
		raw, ok := settings[setting]
		if !ok {
			if name != "" {
				acct.endpoints[svc] = fmt.Sprintf("%s://%s.%s.%s", protocol, name, svc, suffix)
			}
			continue
		}
		endpoint, err := validateEndpoint(setting, raw)
		if err != nil {
			return nil, err
		}
		acct.endpoints[svc] = endpoint
		explicit++
	}

	if acct.kind == CredentialAnonymous && explicit == 0 {
		return nil, configErr("", "missing credentials: expected "+settingAccountKey+" or "+settingSAS)
	}
	if acct.BlobEndpoint() == "" && acct.QueueEndpoint() == "" && acct.TableEndpoint() == "" {
		return nil, configErr("", "no blob, queue or table endpoint can be determined")
	}

	return acct, nil
}

// MustParse is Parse for static strings; it panics on error
func MustParse(connectionString string) *Account {
	acct, err := Parse(connectionString)
	if err != nil {
		panic(fmt.Sprintf("failed to parse connection string: %v", err))
	}
	return acct
}

// parseSettings splits key=value pairs and canonicalises key names
func parseSettings(connectionString string) (map[string]string, error) {
	if strings.TrimSpace(connectionString) == "" {
		return nil, configErr("", "connection string is empty")
	}

	settings := make(map[string]string)
	for _, segment := range strings.Split(connectionString, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		idx := strings.Index(segment, "=")
		if idx < 0 {
			return nil, configErr("", fmt.Sprintf("malformed segment %q", segment))
		}

		rawKey := strings.TrimSpace(segment[:idx])
		value := strings.TrimSpace(segment[idx+1:])
		if rawKey == "" {
			return nil, configErr("", fmt.Sprintf("segment %q has no setting name", segment))
		}

		key, ok := knownSettings[strings.ToLower(rawKey)]
		if !ok {
			return nil, configErr(rawKey, "unknown setting")
		}
		if _, dup := settings[key]; dup {
			return nil, configErr(key, "duplicate setting")
		}
		if value == "" {
			return nil, configErr(key, "value is empty")
		}
		settings[key] = value
	}

	if len(settings) == 0 {
		return nil, configErr("", "connection string has no settings")
	}
	return settings, nil
}

func parseDevelopment(settings map[string]string) (*Account, error) {
	if !strings.EqualFold(settings[settingUseDevelopment], "true") {
		return nil, configErr(settingUseDevelopment, "only 'true' is supported")
	}

	host := developmentHost
	for key, value := range settings {
		switch key {
		case settingUseDevelopment:
		case settingDevelopmentHost:
			u, err := url.Parse(value)
			if err != nil || u.Scheme == "" || u.Hostname() == "" {
				return nil, configErr(settingDevelopmentHost, fmt.Sprintf("invalid URI %q", value))
			}
			host = fmt.Sprintf("%s://%s", u.Scheme, u.Hostname())
		default:
			return nil, configErr(key, "cannot be combined with "+settingUseDevelopment)
		}
	}

	return developmentAccount(host), nil
}

func validateEndpoint(setting, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigurationError{Setting: setting, Reason: "invalid URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", configErr(setting, fmt.Sprintf("URL %q must use http or https", raw))
	}
	if u.Host == "" {
		return "", configErr(setting, fmt.Sprintf("URL %q has no host", raw))
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", configErr(setting, fmt.Sprintf("URL %q must not carry a query or fragment; put the token in %s", raw, settingSAS))
	}
	return strings.TrimSuffix(raw, "/"), nil
}
