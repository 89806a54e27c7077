package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/dex"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "battles.db"))
	require.NoError(t, err)
	d, err := dex.New(
		[]dex.TypeInfo{{Name: "normal"}, {Name: "fire"}, {Name: "water", SuperEffective: []string{"fire"}}},
		[]game.Species{{ID: "emberling", Types: []string{"fire"}}, {ID: "puddlefin", Types: []string{"water"}}},
		[]game.Move{{ID: "tackle", Category: game.CategoryPhysical, Power: 40, Accuracy: 100, Type: "normal"}},
		[]game.Item{{ID: "ball", CatchModifier: 1}},
	)
	require.NoError(t, err)
	h := NewBattleHandler(storage.NewSQLiteRepository(db), d, engine.DefaultBalance(), time.Minute)
	return NewRouter(h)
}

func do(t *testing.T, r http.Handler, method, path, trainer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if trainer != "" {
		req.Header.Set(constants.HeaderTrainerID, trainer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func snapshot(species string, hp int) map[string]any {
	return map[string]any{
		"species":    species,
		"level":      50,
		"current_hp": hp,
		"moves":      []string{"tackle"},
		"stats":      map[string]int{"hp": 200, "attack": 100, "defense": 100, "sp_attack": 100, "sp_defense": 100, "speed": 50},
	}
}

func createBattle(t *testing.T, r http.Handler, enemyHP int) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/battles", "ash", map[string]any{
		"type":   "wild",
		"seed":   3,
		"player": []any{snapshot("emberling", 200)},
		"enemy":  []any{snapshot("puddlefin", enemyHP)},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Battle game.BattleRecord `json:"battle"`
		Events []game.Event      `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, game.PhaseRoundInProgress, out.Battle.Phase)
	assert.NotEmpty(t, out.Events)
	return out.Battle.ID
}

func TestReferenceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/species", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var species []game.Species
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &species))
	require.Len(t, species, 2)
	assert.Equal(t, "emberling", species[0].ID)
	assert.Equal(t, "Emberling", species[0].Name)

	w = do(t, r, http.MethodGet, "/api/moves", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tackle"`)

	w = do(t, r, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrainerHeaderRequired(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/battles", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, r, http.MethodPost, "/api/battles", "not a valid id!", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBattleRejectsUnknownSpecies(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/battles", "ash", map[string]any{
		"type":   "wild",
		"player": []any{snapshot("emberling", 200)},
		"enemy":  []any{snapshot("nobody", 200)},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(engine.CodeMissingReference))
}

func TestBattleFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createBattle(t, r, 200)

	w := do(t, r, http.MethodGet, "/api/battles/"+id, "ash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/battles/"+id, "gary", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, r, http.MethodGet, "/api/battles/not-an-id", "ash", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/api/battles/00000000-0000-0000-0000-000000000000", "ash", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/actions", "ash", map[string]any{
		"actor": 0, "kind": "use_move", "move_id": "tackle", "target": map[string]any{"side": "enemy", "slot": 0},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Resolved bool              `json:"resolved"`
		Battle   game.BattleRecord `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Resolved)
	assert.Equal(t, 2, res.Battle.Round)

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/actions", "ash", map[string]any{"actor": 0, "kind": "dance"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(engine.CodeUnknownAction))

	w = do(t, r, http.MethodGet, "/api/battles/"+id+"/events?since=0", "ash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Events []game.Event `json:"events"`
		Next   int          `json:"next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.NotEmpty(t, page.Events)
	assert.Equal(t, page.Events[len(page.Events)-1].Seq, page.Next)

	w = do(t, r, http.MethodGet, "/api/battles/"+id+"/events?since="+jsonInt(page.Next), "ash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Events)

	w = do(t, r, http.MethodGet, "/api/battles/"+id+"/events?since=-1", "ash", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrainerFleeNotAllowedAndStats(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/battles", "misty", map[string]any{
		"type":   "trainer",
		"player": []any{snapshot("emberling", 200)},
		"enemy":  []any{snapshot("puddlefin", 200)},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Battle game.BattleRecord `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, r, http.MethodPost, "/api/battles/"+created.Battle.ID+"/actions", "misty", map[string]any{"actor": 0, "kind": "flee"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(engine.CodeNotAllowed))

	id := createBattle(t, r, 5)
	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/actions", "ash", map[string]any{"actor": 0, "kind": "use_move", "move_id": "tackle"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/actions", "ash", map[string]any{"actor": 0, "kind": "pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/api/trainers/ash/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["battles_played"])
	assert.EqualValues(t, 1, stats["wins"])
	assert.Contains(t, stats, "created_at")
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
