package azure

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/vesla0x1/azstorage/domain/account"
)

// fakeService is an in-memory stand-in for the blob, queue and table REST
// endpoints of the development storage account. It is plugged in as the SDK
// transport, so no network or emulator is involved.
type fakeService struct {
	mu         sync.Mutex
	containers map[string]bool
	queues     map[string]bool
	tables     map[string]bool

	// names for which every request fails with 403
	forbidden map[string]bool
	requests  int
}

func newFakeService() *fakeService {
	return &fakeService{
		containers: make(map[string]bool),
		queues:     make(map[string]bool),
		tables:     make(map[string]bool),
		forbidden:  make(map[string]bool),
	}
}

func (f *fakeService) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	path := strings.TrimPrefix(req.URL.Path, "/"+account.DevelopmentAccountName)
	path = strings.Trim(path, "/")

	switch req.URL.Port() {
	case "10000":
		return f.blob(req, path), nil
	case "10001":
		return f.queue(req, path), nil
	case "10002":
		return f.table(req, path), nil
	default:
		return nil, fmt.Errorf("fake storage: unexpected host %s", req.URL.Host)
	}
}

func (f *fakeService) blob(req *http.Request, name string) *http.Response {
	if f.forbidden[name] {
		return respond(req, http.StatusForbidden, "AuthorizationFailure", "")
	}
	if req.URL.Query().Get("restype") != "container" {
		return respond(req, http.StatusBadRequest, "UnsupportedQueryParameter", "")
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		if !f.containers[name] {
			return respond(req, http.StatusNotFound, "ContainerNotFound", "")
		}
		return respond(req, http.StatusOK, "", "")
	case http.MethodPut:
		if f.containers[name] {
			return respond(req, http.StatusConflict, "ContainerAlreadyExists", "")
		}
		f.containers[name] = true
		return respond(req, http.StatusCreated, "", "")
	case http.MethodDelete:
		if !f.containers[name] {
			return respond(req, http.StatusNotFound, "ContainerNotFound", "")
		}
		delete(f.containers, name)
		return respond(req, http.StatusAccepted, "", "")
	}
	return respond(req, http.StatusMethodNotAllowed, "UnsupportedHttpVerb", "")
}

func (f *fakeService) queue(req *http.Request, name string) *http.Response {
	if f.forbidden[name] {
		return respond(req, http.StatusForbidden, "AuthorizationFailure", "")
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		if !f.queues[name] {
			return respond(req, http.StatusNotFound, "QueueNotFound", "")
		}
		return respond(req, http.StatusOK, "", "")
	case http.MethodPut:
		if f.queues[name] {
			// identical metadata: the service reports success without creating
			return respond(req, http.StatusNoContent, "", "")
		}
		f.queues[name] = true
		return respond(req, http.StatusCreated, "", "")
	case http.MethodDelete:
		if !f.queues[name] {
			return respond(req, http.StatusNotFound, "QueueNotFound", "")
		}
		delete(f.queues, name)
		return respond(req, http.StatusNoContent, "", "")
	}
	return respond(req, http.StatusMethodNotAllowed, "UnsupportedHttpVerb", "")
}

func (f *fakeService) table(req *http.Request, path string) *http.Response {
	switch {
	case req.Method == http.MethodGet && path == "Tables":
		name := tableKey(filteredTableName(req.URL.Query().Get("$filter")))
		body := `{"value":[]}`
		if f.tables[name] {
			// the service echoes the name as stored, not as queried
			body = fmt.Sprintf(`{"value":[{"TableName":%q}]}`, name)
		}
		return respond(req, http.StatusOK, "", body)

	case req.Method == http.MethodPost && path == "Tables":
		var props struct {
			TableName string `json:"TableName"`
		}
		data, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(data, &props); err != nil {
			return respond(req, http.StatusBadRequest, "InvalidInput", "")
		}
		if f.forbidden[props.TableName] {
			return respond(req, http.StatusForbidden, "AuthorizationFailure", "")
		}
		name := tableKey(props.TableName)
		if f.tables[name] {
			return respond(req, http.StatusConflict, "TableAlreadyExists", "")
		}
		f.tables[name] = true
		return respond(req, http.StatusNoContent, "", "")

	case req.Method == http.MethodDelete && strings.HasPrefix(path, "Tables("):
		name := tableKey(strings.TrimSuffix(strings.TrimPrefix(path, "Tables('"), "')"))
		if !f.tables[name] {
			return respond(req, http.StatusNotFound, "ResourceNotFound", "")
		}
		delete(f.tables, name)
		return respond(req, http.StatusNoContent, "", "")
	}
	return respond(req, http.StatusBadRequest, "InvalidInput", "")
}

// create and remove simulate changes made by another client
func (f *fakeService) create(kind, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(kind)[storeKey(kind, name)] = true
}

func (f *fakeService) remove(kind, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store(kind), storeKey(kind, name))
}

func (f *fakeService) has(kind, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(kind)[storeKey(kind, name)]
}

func (f *fakeService) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeService) store(kind string) map[string]bool {
	switch kind {
	case "container":
		return f.containers
	case "queue":
		return f.queues
	default:
		return f.tables
	}
}

// tableKey folds table names; the table service ignores their case
func tableKey(name string) string {
	return strings.ToLower(name)
}

func storeKey(kind, name string) string {
	if kind == "table" {
		return tableKey(name)
	}
	return name
}

func filteredTableName(filter string) string {
	start := strings.Index(filter, "'")
	end := strings.LastIndex(filter, "'")
	if start < 0 || end <= start {
		return ""
	}
	return strings.ReplaceAll(filter[start+1:end], "''", "'")
}

func respond(req *http.Request, status int, code, body string) *http.Response {
	header := http.Header{}
	header.Set("x-ms-request-id", "00000000-0000-0000-0000-000000000000")
	header.Set("x-ms-version", "2020-10-02")
	if code != "" {
		header.Set("x-ms-error-code", code)
	}
	if body != "" {
		header.Set("Content-Type", "application/json;odata=minimalmetadata;streaming=true;charset=utf-8")
	}

	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
