package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/po-optimizer/internal/application/dto"
	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/csvfile"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/export"
	apphttp "github.com/jhoicas/po-optimizer/internal/interfaces/http"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

const redSData = "SKU;Week Number;Sales Rate Per Week;Current Quantity;Velocity\n" +
	"Red S;0;50;900;Fast\n" +
	"Red S;1;100;200;Fast\n"

// buildPOApp levanta el router sobre un archivo temporal. secret vacío = rutas abiertas.
func buildPOApp(t *testing.T, content, secret string) (*fiber.App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	log := logger.Nop()
	src := csvfile.NewFileSource(path, nil, log)
	uc := replenishment.NewOptimizeUseCase(src, entity.DefaultPOPolicy(), log, export.NewCSVExporter())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Optimize:         uc,
		DefaultTargetWOS: entity.DefaultTargetWOS,
		JWTSecret:        secret,
		Logger:           log,
	})
	return app, path
}

func do(t *testing.T, app *fiber.App, method, target, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/po/suggestion
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggest_DevuelvePOConAdvertencias(t *testing.T) {
	app, _ := buildPOApp(t, redSData, "")
	resp := do(t, app, http.MethodGet, "/api/po/suggestion", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.POResultDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, 15, body.TargetWOS)
	assert.False(t, body.Valid)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, "Red S", body.Lines[0].SKU)
	assert.Equal(t, 1300, body.Lines[0].SuggestedReplanQty)
	assert.Equal(t, entity.ReasonHighVelocity, body.Lines[0].Reason)
	assert.Equal(t, 1300, body.Summary.TotalUnits)
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "Total Units below minimum: 1300 < 5000", body.Issues[0].Message)
}

func TestSuggest_TargetWOSDelQuery(t *testing.T) {
	app, _ := buildPOApp(t, redSData, "")
	resp := do(t, app, http.MethodGet, "/api/po/suggestion?target_wos=8", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.POResultDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 8, body.TargetWOS)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, 600, body.Lines[0].SuggestedReplanQty)
}

func TestSuggest_TargetWOSInvalido_Retorna400(t *testing.T) {
	app, _ := buildPOApp(t, redSData, "")

	for _, q := range []string{"25", "7", "abc"} {
		t.Run(q, func(t *testing.T) {
			resp := do(t, app, http.MethodGet, "/api/po/suggestion?target_wos="+q, "")
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
		})
	}
}

func TestSuggest_ColumnasFaltantes_Retorna422(t *testing.T) {
	app, _ := buildPOApp(t, "SKU;Week Number\nRed S;1\n", "")
	resp := do(t, app, http.MethodGet, "/api/po/suggestion", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "DATA_FORMAT", body.Code)
	assert.Contains(t, body.Message, "Sales Rate Per Week")
}

// ──────────────────────────────────────────────────────────────────────────────
// Descargas
// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadCSV(t *testing.T) {
	app, _ := buildPOApp(t, redSData, "")
	resp := do(t, app, http.MethodGet, "/api/po/suggestion/csv", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "optimized_po.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t,
		"SKU,Color,Size,Suggested Replan Qty,Reason\nRed S,Red,S,1300,High velocity & WOS < 10\n",
		string(body))
}

// Sin exportador PDF registrado el formato se rechaza como entrada inválida.
func TestDownloadPDF_SinExportador_Retorna400(t *testing.T) {
	app, _ := buildPOApp(t, redSData, "")
	resp := do(t, app, http.MethodGet, "/api/po/suggestion/pdf", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshots y recarga
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshots(t *testing.T) {
	app, _ := buildPOApp(t, redSData+"Blue M;3;0;40;\n", "")
	resp := do(t, app, http.MethodGet, "/api/po/snapshots", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.SnapshotsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Snapshots, 2)
	assert.Equal(t, "Red S", body.Snapshots[0].SKU)
	assert.Equal(t, 1, body.Snapshots[0].WeekNumber)
	assert.Equal(t, "Blue M", body.Snapshots[1].SKU)
	assert.Nil(t, body.Snapshots[1].WOS, "sin ventas el WOS es infinito y viaja como null")
	assert.Equal(t, 0, body.Snapshots[1].SuggestedReplanQty)
}

func TestReload_LeeElArchivoNuevo(t *testing.T) {
	app, path := buildPOApp(t, redSData, "")

	resp := do(t, app, http.MethodGet, "/api/po/snapshots", "")
	resp.Body.Close()

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(redSData, "Red S", "Red X", -1)), 0o644))
	resp = do(t, app, http.MethodPost, "/api/po/data/reload", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodGet, "/api/po/snapshots", "")
	defer resp.Body.Close()
	var body dto.SnapshotsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Snapshots, 1)
	assert.Equal(t, "Red X", body.Snapshots[0].SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación opcional
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ConSecretExigeToken(t *testing.T) {
	app, _ := buildPOApp(t, redSData, testJWTSecret)

	resp := do(t, app, http.MethodGet, "/api/po/suggestion", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/po/suggestion", bearer(t))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
