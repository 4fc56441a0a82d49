package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/shipment-tracker/internal/cli"
	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/repository/memory"
	"github.com/mamadbah2/shipment-tracker/internal/server/handlers"
	"github.com/mamadbah2/shipment-tracker/internal/server/router"
	"github.com/mamadbah2/shipment-tracker/internal/service/shipments"
)

const trackerID = "TRACK-0b5e7c1e-4f7a-4c1b-9a55-2f6f1f0a8d3e"

func newAPI(t *testing.T, seed ...models.SubmitRequest) string {
	t.Helper()
	svc := shipments.NewService(memory.NewShipmentRepository(), nil)
	for _, req := range seed {
		_, err := svc.Submit(context.Background(), req)
		require.NoError(t, err)
	}
	srv := httptest.NewServer(router.New(handlers.NewShipmentHandler(svc, nil), nil))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SHIPCTL_LOG_FILE", "")
	t.Setenv("SHIPCTL_OUTPUT_DIR", "")

	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func sample() models.SubmitRequest {
	return models.SubmitRequest{
		Sender:          models.Party{Name: "Alice", Address: "1 Main St"},
		Receiver:        models.Party{Name: "Bob", Address: "2 Oak Ave"},
		ShipmentDetails: "Books",
		TrackerID:       trackerID,
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shipctl dev")
}

func TestOrdersCmd_Table(t *testing.T) {
	api := newAPI(t, sample())

	out, err := run(t, "orders", "--api", api)
	require.NoError(t, err)
	assert.Contains(t, out, "TRACKER ID")
	assert.Contains(t, out, trackerID)
	assert.Contains(t, out, "Alice")
}

func TestOrdersCmd_JSON(t *testing.T) {
	api := newAPI(t, sample())

	out, err := run(t, "orders", "--api", api, "--format", "json")
	require.NoError(t, err)

	var records []models.ShipmentRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Bob", records[0].Receiver.Name)
	assert.False(t, records[0].ID.IsZero())
}

func TestOrdersCmd_YAML(t *testing.T) {
	api := newAPI(t, sample())

	out, err := run(t, "orders", "--api", api, "-f", "yaml")
	require.NoError(t, err)

	var docs []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, trackerID, docs[0]["trackerId"])
	assert.Equal(t, "Books", docs[0]["shipmentDetails"])
	assert.NotEmpty(t, docs[0]["_id"])
}

func TestOrdersCmd_EmptyJSON(t *testing.T) {
	out, err := run(t, "orders", "--api", newAPI(t), "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestOrdersCmd_UnknownFormat(t *testing.T) {
	_, err := run(t, "orders", "--api", newAPI(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestOrdersCmd_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := run(t, "orders", "--api", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching shipments")
}

func TestOrdersCmd_IgnoresServerOnlySettings(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "soon")

	out, err := run(t, "orders", "--api", newAPI(t, sample()), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, trackerID)
}

func TestMissingEnvFile(t *testing.T) {
	_, err := run(t, "orders", "--api", newAPI(t), "--env-file", filepath.Join(t.TempDir(), "shipctl.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestEnvFileSetsAPI(t *testing.T) {
	t.Setenv("SHIPMENT_API_URL", "")
	require.NoError(t, os.Unsetenv("SHIPMENT_API_URL"))

	path := filepath.Join(t.TempDir(), "shipctl.env")
	require.NoError(t, os.WriteFile(path, []byte("SHIPMENT_API_URL="+newAPI(t, sample())+"\n"), 0o600))

	out, err := run(t, "orders", "--env-file", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, trackerID)
}

func TestBarcodeCmd_PrintsAndExports(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "barcode", trackerID, "--png", "--pdf", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "█")
	assert.Contains(t, out, trackerID)

	png, err := os.ReadFile(filepath.Join(dir, trackerID+".png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	pdf, err := os.ReadFile(filepath.Join(dir, trackerID+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf[:4])
}

func TestBarcodeCmd_NoExportByDefault(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "barcode", trackerID, "--out", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBarcodeCmd_RequiresID(t *testing.T) {
	_, err := run(t, "barcode")
	assert.Error(t, err)
}

func TestWizardCmd_Flags(t *testing.T) {
	root := cli.NewRootCmdForTest()
	wiz, _, err := root.Find([]string{"wizard"})
	require.NoError(t, err)

	assert.NotNil(t, wiz.Flags().Lookup("strict"))
	assert.NotNil(t, wiz.Flags().Lookup("out"))
	assert.NotNil(t, root.PersistentFlags().Lookup("api"))
}
