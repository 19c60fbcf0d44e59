package azure

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/domain/account"
	"github.com/vesla0x1/azstorage/infrastructure/observability/adapters/stdout"
)

const devBase = "http://127.0.0.1"

func newTestFactory(t *testing.T, opts ...Option) (*Factory, *fakeService) {
	t.Helper()

	svc := newFakeService()
	opts = append([]Option{
		WithTransport(svc),
		WithRetry(policy.RetryOptions{MaxRetries: -1}),
	}, opts...)

	f, err := NewFromConnectionString("UseDevelopmentStorage=true", opts...)
	require.NoError(t, err)
	return f, svc
}

// uniqueName returns a name valid for containers, queues and tables
func uniqueName(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func TestNewFromConnectionString_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		setting string
	}{
		{name: "empty", connStr: ""},
		{name: "no separator", connStr: "AccountName"},
		{name: "unknown key", connStr: "AccountName=a;Colour=blue", setting: "Colour"},
		{name: "key is not base64", connStr: "AccountName=a;AccountKey=not base64!", setting: "AccountKey"},
		{name: "no credentials or endpoints", connStr: "DefaultEndpointsProtocol=https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFromConnectionString(tt.connStr)
			require.Error(t, err)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, account.ErrInvalidConnectionString)

			var cfgErr *account.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			if tt.setting != "" {
				assert.Equal(t, tt.setting, cfgErr.Setting)
			}
		})
	}
}

func TestNew_NilAccount(t *testing.T) {
	f, err := New(nil)
	assert.ErrorIs(t, err, ErrNilAccount)
	assert.Nil(t, f)
}

func TestFactory_Addressing(t *testing.T) {
	f, _ := newTestFactory(t)

	tests := []struct {
		name   string
		handle func() ports.ResourceHandle
		url    string
	}{
		{
			name:   "container",
			handle: func() ports.ResourceHandle { return f.GetBlobContainer("reports") },
			url:    devBase + ":10000/devstoreaccount1/reports",
		},
		{
			name:   "queue",
			handle: func() ports.ResourceHandle { return f.GetQueue("jobs") },
			url:    devBase + ":10001/devstoreaccount1/jobs",
		},
		{
			name:   "table",
			handle: func() ports.ResourceHandle { return f.GetTable("audit") },
			url:    devBase + ":10002/devstoreaccount1/audit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := tt.handle(), tt.handle()

			assert.NotSame(t, first, second)
			assert.Equal(t, first.Name(), second.Name())
			assert.Equal(t, first.AccountName(), second.AccountName())
			assert.Equal(t, first.URL(), second.URL())

			assert.Equal(t, account.DevelopmentAccountName, first.AccountName())
			assert.Equal(t, tt.url, first.URL())
		})
	}
}

func TestFactory_AccessorsDoNoIO(t *testing.T) {
	f, svc := newTestFactory(t)

	f.GetBlobContainer("reports")
	f.GetQueue("jobs")
	f.GetTable("audit")

	assert.Equal(t, 0, svc.requestCount())
}

func TestFactory_SharedKeyAccount(t *testing.T) {
	acct, err := account.NewSharedKey("myaccount", "dGVzdC1hY2NvdW50LWtleQ==")
	require.NoError(t, err)

	f, err := New(acct)
	require.NoError(t, err)

	assert.Same(t, acct, f.Account())
	assert.Equal(t, "https://myaccount.blob.core.windows.net/reports", f.GetBlobContainer("reports").URL())
	assert.Equal(t, "https://myaccount.queue.core.windows.net/jobs", f.GetQueue("jobs").URL())
	assert.Equal(t, "https://myaccount.table.core.windows.net/audit", f.GetTable("audit").URL())
	assert.NotNil(t, f.Container("reports").Client())
	assert.NotNil(t, f.Queue("jobs").Client())
	assert.NotNil(t, f.Table("audit").Client())
}

func TestFactory_MissingEndpoint(t *testing.T) {
	f, err := NewFromConnectionString(
		"BlobEndpoint=https://myaccount.blob.core.windows.net;SharedAccessSignature=sv=2020-10-02&sig=abc")
	require.NoError(t, err)

	assert.Equal(t, "https://myaccount.blob.core.windows.net/reports", f.GetBlobContainer("reports").URL())

	queue := f.GetQueue("jobs")
	assert.Equal(t, "", queue.URL())
	assert.Nil(t, f.Queue("jobs").Client())

	ctx := context.Background()
	_, err = queue.Exists(ctx)
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)
	_, err = queue.CreateIfNotExists(ctx)
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)
	_, err = f.GetTable("audit").DeleteIfExists(ctx)
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)
}

func TestFactory_ConcurrentAccessors(t *testing.T) {
	f, _ := newTestFactory(t)

	var wg sync.WaitGroup
	urls := make([]string, 50)
	for i := range urls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				urls[i] = f.GetBlobContainer("shared").URL()
			case 1:
				urls[i] = f.GetQueue("shared").URL()
			default:
				urls[i] = f.GetTable("shared").URL()
			}
		}(i)
	}
	wg.Wait()

	for i, url := range urls {
		assert.True(t, strings.HasSuffix(url, "/devstoreaccount1/shared"), "handle %d: %s", i, url)
	}
}

func TestHandles_ExistsFollowsServiceState(t *testing.T) {
	f, svc := newTestFactory(t)

	tests := []struct {
		kind   string
		name   string
		handle func(name string) ports.ResourceHandle
	}{
		{kind: "container", name: "reports", handle: func(n string) ports.ResourceHandle { return f.GetBlobContainer(n) }},
		{kind: "queue", name: "jobs", handle: func(n string) ports.ResourceHandle { return f.GetQueue(n) }},
		{kind: "table", name: "audit", handle: func(n string) ports.ResourceHandle { return f.GetTable(n) }},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			ctx := context.Background()
			h := tt.handle(tt.name)

			exists, err := h.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)

			svc.create(tt.kind, tt.name)

			exists, err = h.Exists(ctx)
			require.NoError(t, err)
			assert.True(t, exists)

			// a second handle sees the same state
			exists, err = tt.handle(tt.name).Exists(ctx)
			require.NoError(t, err)
			assert.True(t, exists)

			svc.remove(tt.kind, tt.name)

			exists, err = h.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestTable_NameCaseIsIgnored(t *testing.T) {
	f, svc := newTestFactory(t)
	ctx := context.Background()
	svc.create("table", "audit")

	table := f.GetTable("Audit")

	exists, err := table.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	created, err := table.CreateIfNotExists(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	deleted, err := table.DeleteIfExists(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, svc.has("table", "audit"))
}

func TestNewFromConnectionString_EndpointWithQuery(t *testing.T) {
	f, err := NewFromConnectionString("BlobEndpoint=https://myaccount.blob.core.windows.net/?sv=1&sig=x")
	assert.Nil(t, f)

	var cfgErr *account.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "BlobEndpoint", cfgErr.Setting)
}

func TestHandles_CreateAndDeleteIfNeeded(t *testing.T) {
	f, svc := newTestFactory(t)

	tests := []struct {
		kind   string
		handle func(name string) ports.ResourceHandle
	}{
		{kind: "container", handle: func(n string) ports.ResourceHandle { return f.GetBlobContainer(n) }},
		{kind: "queue", handle: func(n string) ports.ResourceHandle { return f.GetQueue(n) }},
		{kind: "table", handle: func(n string) ports.ResourceHandle { return f.GetTable(n) }},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			ctx := context.Background()
			name := uniqueName("t")
			h := tt.handle(name)

			created, err := h.CreateIfNotExists(ctx)
			require.NoError(t, err)
			assert.True(t, created)
			assert.True(t, svc.has(tt.kind, name))

			created, err = h.CreateIfNotExists(ctx)
			require.NoError(t, err)
			assert.False(t, created)

			exists, err := h.Exists(ctx)
			require.NoError(t, err)
			assert.True(t, exists)

			deleted, err := h.DeleteIfExists(ctx)
			require.NoError(t, err)
			assert.True(t, deleted)
			assert.False(t, svc.has(tt.kind, name))

			deleted, err = h.DeleteIfExists(ctx)
			require.NoError(t, err)
			assert.False(t, deleted)

			exists, err = h.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestHandles_ServiceErrorsPropagate(t *testing.T) {
	f, svc := newTestFactory(t)
	svc.forbidden["locked"] = true
	ctx := context.Background()

	_, err := f.GetBlobContainer("locked").Exists(ctx)
	require.Error(t, err)
	var respErr *azcore.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "AuthorizationFailure", respErr.ErrorCode)
	assert.Contains(t, err.Error(), `container "locked"`)

	_, err = f.GetQueue("locked").CreateIfNotExists(ctx)
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, 403, respErr.StatusCode)

	_, err = f.GetTable("locked").CreateIfNotExists(ctx)
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "AuthorizationFailure", respErr.ErrorCode)
}

func TestHandles_Instrumentation(t *testing.T) {
	var logs bytes.Buffer
	metrics := stdout.NewMetrics(&bytes.Buffer{})
	logger := stdout.NewLogger(&logs, "debug", false)

	f, svc := newTestFactory(t, WithLogger(logger), WithMetrics(metrics))
	svc.forbidden["locked"] = true
	ctx := context.Background()

	_, err := f.GetQueue("jobs").CreateIfNotExists(ctx)
	require.NoError(t, err)
	_, err = f.GetQueue("locked").Exists(ctx)
	require.Error(t, err)

	tags := map[string]string{"account": account.DevelopmentAccountName, "result": "created"}
	assert.Len(t, metrics.GetHistogram("storage.queue.create", tags), 1)
	assert.Equal(t, int64(1), metrics.GetCounter("storage.queue.errors", map[string]string{
		"account":   account.DevelopmentAccountName,
		"operation": "exists",
	}))

	assert.Contains(t, logs.String(), "[DEBUG] storage operation completed")
	assert.Contains(t, logs.String(), "[ERROR] storage operation failed")
	assert.Contains(t, logs.String(), "name=locked")
}
