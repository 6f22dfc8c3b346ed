package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcasillas/inventario-web/internal/application/auth"
	"github.com/jmcasillas/inventario-web/internal/application/usecase"
	"github.com/jmcasillas/inventario-web/internal/domain"
	"github.com/jmcasillas/inventario-web/internal/domain/entity"
	"github.com/jmcasillas/inventario-web/internal/domain/repository"
	apphttp "github.com/jmcasillas/inventario-web/internal/interfaces/http"
	pkgjwt "github.com/jmcasillas/inventario-web/pkg/jwt"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID   map[int64]*entity.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Name == u.Name {
			return domain.ErrDuplicateUser
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byID[cp.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	for i := int64(1); i <= r.nextID; i++ {
		if u, ok := r.byID[i]; ok {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memWarehouseRepo struct {
	warehouses map[int64]*entity.Warehouse
	products   *memProductRepo
	nextID     int64
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) (int64, error) {
	r.nextID++
	cp := *w
	cp.ID = r.nextID
	r.warehouses[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for i := int64(1); i <= r.nextID; i++ {
		if w, ok := r.warehouses[i]; ok {
			cp := *w
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.warehouses[cp.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	if n, _ := r.CountProducts(context.Background(), id); n > 0 {
		return domain.ErrWarehouseInUse
	}
	delete(r.warehouses, id)
	return nil
}

func (r *memWarehouseRepo) CountProducts(_ context.Context, id int64) (int, error) {
	n := 0
	for _, p := range r.products.products {
		if p.WarehouseID == id {
			n++
		}
	}
	return n, nil
}

type memProductRepo struct {
	products   map[int64]*entity.Product
	warehouses *memWarehouseRepo
	nextID     int64
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	if _, ok := r.warehouses.warehouses[p.WarehouseID]; !ok {
		return 0, domain.ErrWarehouseNotFound
	}
	r.nextID++
	cp := *p
	cp.ID = r.nextID
	r.products[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	for i := int64(1); i <= r.nextID; i++ {
		if p, ok := r.products[i]; ok {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.warehouses.warehouses[p.WarehouseID]; !ok {
		return domain.ErrWarehouseNotFound
	}
	cp := *p
	r.products[cp.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type memTxRunner struct {
	warehouses *memWarehouseRepo
	products   *memProductRepo
}

func (r memTxRunner) Run(_ context.Context, fn func(
	warehouses repository.WarehouseRepository,
	products repository.ProductRepository,
) error) error {
	return fn(r.warehouses, r.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	users      *memUserRepo
	warehouses *memWarehouseRepo
	products   *memProductRepo
}

func buildTestApp(t *testing.T) *testEnv {
	t.Helper()

	users := &memUserRepo{byID: make(map[int64]*entity.User)}
	warehouses := &memWarehouseRepo{warehouses: make(map[int64]*entity.Warehouse)}
	products := &memProductRepo{products: make(map[int64]*entity.Product), warehouses: warehouses}
	warehouses.products = products

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test",
	})
	productUC := usecase.NewProductUseCase(products)
	warehouseUC := usecase.NewWarehouseUseCase(warehouses, memTxRunner{warehouses: warehouses, products: products})

	sessions := session.New(session.Config{
		KeyLookup:    "cookie:sesion_id",
		KeyGenerator: uuid.NewString,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		Sessions:    sessions,
		JWTSecret:   testJWTSecret,
	})
	return &testEnv{app: app, users: users, warehouses: warehouses, products: products}
}

func (e *testEnv) seedUser(t *testing.T, name, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Name: name, PasswordHash: string(hash), Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) seedWarehouse(t *testing.T, name string) int64 {
	t.Helper()
	id, err := e.warehouses.Create(context.Background(), &entity.Warehouse{Name: name, ModifiedBy: "seed"})
	require.NoError(t, err)
	return id
}

func (e *testEnv) seedProduct(t *testing.T, name string, warehouseID int64) int64 {
	t.Helper()
	id, err := e.products.Create(context.Background(), &entity.Product{
		Name: name, Price: decimal.NewFromInt(10), Quantity: 1, WarehouseID: warehouseID, ModifiedBy: "seed",
	})
	require.NoError(t, err)
	return id
}

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, "test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión de navegador: login con formulario, cookie, logout
// ──────────────────────────────────────────────────────────────────────────────

func loginForm(t *testing.T, app *fiber.App, name, password string) *http.Response {
	t.Helper()
	form := url.Values{"nombre": {name}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginForm_PasswordIncorrecto_SinSesion(t *testing.T) {
	env := buildTestApp(t)
	env.seedUser(t, "alice", "secreto123", entity.RoleAdmin)

	resp := loginForm(t, env.app, "alice", "wrong")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=credenciales")

	// Sin cookie de sesión utilizable: el acceso a la API sigue siendo anónimo
	api := doJSON(t, env.app, http.MethodGet, "/api/productos", "", "")
	defer api.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode)
}

func TestLoginForm_Correcto_EstableceSesion(t *testing.T) {
	env := buildTestApp(t)
	env.seedUser(t, "alice", "secreto123", entity.RoleAdmin)

	resp := loginForm(t, env.app, "alice", "secreto123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/productos", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies, "el login debe establecer la cookie de sesión")

	// La sesión da acceso a la API
	req := httptest.NewRequest(http.MethodGet, "/api/productos", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	api, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer api.Body.Close()
	assert.Equal(t, http.StatusOK, api.StatusCode)
}

func TestLogout_InvalidaSesion_Idempotente(t *testing.T) {
	env := buildTestApp(t)
	env.seedUser(t, "alice", "secreto123", entity.RoleAdmin)

	login := loginForm(t, env.app, "alice", "secreto123")
	defer login.Body.Close()
	cookies := login.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	out, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer out.Body.Close()
	assert.Equal(t, http.StatusSeeOther, out.StatusCode)

	// La cookie vieja ya no sirve
	req = httptest.NewRequest(http.MethodGet, "/api/productos", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	api, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer api.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode)

	// Logout sin sesión activa no es un error
	again, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/logout", nil), -1)
	require.NoError(t, err)
	defer again.Body.Close()
	assert.Equal(t, http.StatusSeeOther, again.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// API: autenticación y autorización por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AccesoAnonimo_401(t *testing.T) {
	env := buildTestApp(t)

	for _, path := range []string{"/api/productos", "/api/almacenes", "/api/usuarios"} {
		resp := doJSON(t, env.app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestAPI_TokenInvalido_401(t *testing.T) {
	env := buildTestApp(t)

	resp := doJSON(t, env.app, http.MethodGet, "/api/productos", "Bearer token.invalido.aqui", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_UsuarioEliminado_SesionInvalida(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "alice", "x", entity.RoleAdmin)
	tok := bearer(t, u.ID, u.Role)

	resp := doJSON(t, env.app, http.MethodGet, "/api/productos", tok, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	delete(env.users.byID, u.ID)

	resp = doJSON(t, env.app, http.MethodGet, "/api/productos", tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RolProductos_GestionaProductosPeroNoAlmacenes(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "pedro", "x", entity.RoleProductos)
	whID := env.seedWarehouse(t, "Central")
	tok := bearer(t, u.ID, u.Role)

	// Puede crear productos
	body := `{"nombre":"Taladro","precio":99.9,"cantidad":3,"departamento":"Herramientas","almacen":` + jsonInt(whID) + `}`
	resp := doJSON(t, env.app, http.MethodPost, "/api/productos", tok, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Pero crear un almacén es Forbidden
	resp2 := doJSON(t, env.app, http.MethodPost, "/api/almacenes", tok, `{"nombre":"Norte"}`)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)

	// Y crear usuarios también
	resp3 := doJSON(t, env.app, http.MethodPost, "/api/usuarios", tok, `{"nombre":"x","password":"y","rol":"admin"}`)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp3.StatusCode)
}

func TestAPI_RolAlmacenes_NoGestionaProductos(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "ana", "x", entity.RoleAlmacenes)
	whID := env.seedWarehouse(t, "Central")
	tok := bearer(t, u.ID, u.Role)

	body := `{"nombre":"Taladro","precio":10,"cantidad":1,"departamento":"","almacen":` + jsonInt(whID) + `}`
	resp := doJSON(t, env.app, http.MethodPost, "/api/productos", tok, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// API: reglas de datos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearProducto_AlmacenInexistente_400(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "admin", "x", entity.RoleAdmin)
	tok := bearer(t, u.ID, u.Role)

	body := `{"nombre":"Taladro","precio":10,"cantidad":1,"departamento":"","almacen":99}`
	resp := doJSON(t, env.app, http.MethodPost, "/api/productos", tok, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.products.products, "no debe crearse ninguna fila")
}

func TestAPI_EliminarAlmacenEnUso_400SinCambios(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "admin", "x", entity.RoleAdmin)
	whID := env.seedWarehouse(t, "Central")
	prodID := env.seedProduct(t, "Taladro", whID)
	tok := bearer(t, u.ID, u.Role)

	resp := doJSON(t, env.app, http.MethodDelete, "/api/almacenes/"+jsonInt(whID), tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "ALMACEN_EN_USO", body["code"])

	// Ni el almacén ni el producto cambiaron
	_, whOK := env.warehouses.warehouses[whID]
	_, prodOK := env.products.products[prodID]
	assert.True(t, whOK)
	assert.True(t, prodOK)
}

func TestAPI_EliminarAlmacenSinUso_200(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "admin", "x", entity.RoleAdmin)
	whID := env.seedWarehouse(t, "Norte")
	tok := bearer(t, u.ID, u.Role)

	resp := doJSON(t, env.app, http.MethodDelete, "/api/almacenes/"+jsonInt(whID), tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, ok := env.warehouses.warehouses[whID]
	assert.False(t, ok)
}

func TestAPI_ActualizarProductoInexistente_404(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "admin", "x", entity.RoleAdmin)
	env.seedWarehouse(t, "Central")
	tok := bearer(t, u.ID, u.Role)

	body := `{"nombre":"X","precio":1,"cantidad":1,"departamento":"","almacen":1}`
	resp := doJSON(t, env.app, http.MethodPut, "/api/productos/42", tok, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CrearUsuarioDuplicado_409(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "admin", "x", entity.RoleAdmin)
	tok := bearer(t, u.ID, u.Role)

	body := `{"nombre":"bob","password":"clave1234","rol":"productos"}`
	resp := doJSON(t, env.app, http.MethodPost, "/api/usuarios", tok, body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/usuarios", tok, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	list, err := env.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2, "admin + bob: el duplicado no escribe fila")
}

func TestAPI_ModificacionEstampaUsuarioYFecha(t *testing.T) {
	env := buildTestApp(t)
	u := env.seedUser(t, "carla", "x", entity.RoleProductos)
	whID := env.seedWarehouse(t, "Central")
	prodID := env.seedProduct(t, "Taladro", whID)
	tok := bearer(t, u.ID, u.Role)

	body := `{"nombre":"Taladro pro","precio":20,"cantidad":2,"departamento":"","almacen":` + jsonInt(whID) + `}`
	resp := doJSON(t, env.app, http.MethodPut, "/api/productos/"+jsonInt(prodID), tok, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "carla", out["usuario_modificacion"])
}

func jsonInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
