package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/nextflix/internal/config"
	"github.com/user/nextflix/internal/handler"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/repository"
	"github.com/user/nextflix/internal/router"
	"github.com/user/nextflix/internal/utils"
)

// envelope 统一响应结构
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Count   *int            `json:"count"`
}

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("genre", model.GenreValidator)
		v.RegisterValidation("maturity", model.MaturityValidator)
	}
}

func setup(t *testing.T) (*gin.Engine, *repository.Repositories) {
	t.Helper()

	utils.InitCache()
	repos := repository.NewMemoryRepositories()
	cfg := &config.Config{
		Env:       "test",
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	r := gin.New()
	router.RegisterRoutes(r, handler.NewHandler(repos, cfg))
	return r, repos
}

func do(r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func registerUser(t *testing.T, r *gin.Engine, name, email string) (token string, id int) {
	t.Helper()

	w, env := do(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}

func loginAdmin(t *testing.T, r *gin.Engine, repos *repository.Repositories) (token string, id int) {
	t.Helper()

	admin, err := repos.User.Create("Root", "root@example.com", "rootpass", "admin")
	require.NoError(t, err)

	w, env := do(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "root@example.com", "password": "rootpass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token, admin.ID
}

func seedMovie(t *testing.T, repos *repository.Repositories, title string, genres []string, trending, topRated bool) *model.Movie {
	t.Helper()

	movie, err := repos.Movie.Create(&model.Movie{
		Title:          title,
		Description:    "seeded description",
		ReleaseYear:    2022,
		Duration:       100,
		Genres:         pq.StringArray(genres),
		Director:       "Director",
		Cast:           pq.StringArray{"Actor"},
		PosterPath:     "/p.jpg",
		BackdropPath:   "/b.jpg",
		VideoURL:       "https://cdn.example.com/v.mp4",
		MaturityRating: "PG",
		IsTrending:     trending,
		IsTopRated:     topRated,
	})
	require.NoError(t, err)
	return movie
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setup(t)

	registerUser(t, r, "Alice", "alice@example.com")

	w, env := do(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Imposter", "email": "alice@example.com", "password": "other456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	r, _ := setup(t)

	registerUser(t, r, "Bob", "bob@example.com")

	wWrongPass, envWrongPass := do(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "bob@example.com", "password": "wrong-password",
	})
	wUnknown, envUnknown := do(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "whatever1",
	})

	// 密码错误与账号不存在的响应不可区分
	assert.Equal(t, http.StatusUnauthorized, wWrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, envWrongPass.Error, envUnknown.Error)
}

func TestAuthMe(t *testing.T) {
	r, _ := setup(t)

	token, _ := registerUser(t, r, "Carol", "carol@example.com")

	w, env := do(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "carol@example.com", user.Email)

	w, _ = do(r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePasswordFlow(t *testing.T) {
	r, _ := setup(t)

	token, _ := registerUser(t, r, "Dave", "dave@example.com")

	// 当前密码不对，拒绝修改
	w, _ := do(r, http.MethodPut, "/api/auth/updatepassword", token, gin.H{
		"currentPassword": "wrong-password", "newPassword": "fresh-secret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodPut, "/api/auth/updatepassword", token, gin.H{
		"currentPassword": "secret123", "newPassword": "fresh-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 旧密码失效，新密码可登录
	w, _ = do(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "dave@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "dave@example.com", "password": "fresh-secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateDetails(t *testing.T) {
	r, _ := setup(t)

	token, _ := registerUser(t, r, "Eve", "eve@example.com")

	w, env := do(r, http.MethodPut, "/api/auth/updatedetails", token, gin.H{
		"name": "Eve Updated",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Eve Updated", user.Name)
	assert.Equal(t, "eve@example.com", user.Email)
}

func TestMoviesPublicEndpoints(t *testing.T) {
	r, repos := setup(t)

	comedy := seedMovie(t, repos, "Comedy Night", []string{"comedy"}, true, false)
	seedMovie(t, repos, "Heavy Drama", []string{"drama"}, false, true)
	original := seedMovie(t, repos, "Dramedy", []string{"comedy", "drama"}, false, false)

	markOriginal := true
	_, err := repos.Movie.Update(original.ID, model.MoviePatch{IsOriginal: &markOriginal})
	require.NoError(t, err)

	w, env := do(r, http.MethodGet, "/api/movies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)

	w, env = do(r, http.MethodGet, "/api/movies/trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *env.Count)

	w, env = do(r, http.MethodGet, "/api/movies/top-rated", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *env.Count)

	w, env = do(r, http.MethodGet, "/api/movies/originals", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *env.Count)

	// 类型过滤只返回包含该类型的影片
	w, env = do(r, http.MethodGet, "/api/movies/genre/comedy", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *env.Count)

	// 枚举之外的类型是 400，而不是空列表
	w, _ = do(r, http.MethodGet, "/api/movies/genre/telenovela", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodGet, "/api/movies/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(r, http.MethodGet, "/api/movies/search?q=dram", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *env.Count)

	w, env = do(r, http.MethodGet, fmt.Sprintf("/api/movies/%d", comedy.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var movie model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &movie))
	assert.Equal(t, "Comedy Night", movie.Title)

	w, _ = do(r, http.MethodGet, "/api/movies/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMovieAdminCRUD(t *testing.T) {
	r, repos := setup(t)

	adminToken, _ := loginAdmin(t, r, repos)
	userToken, _ := registerUser(t, r, "Frank", "frank@example.com")

	payload := gin.H{
		"title":          "Inception",
		"description":    "A mind-bending heist.",
		"releaseYear":    2010,
		"duration":       148,
		"genres":         []string{"science-fiction", "thriller"},
		"director":       "Christopher Nolan",
		"cast":           []string{"Leonardo DiCaprio"},
		"poster_path":    "/inception.jpg",
		"backdrop_path":  "/inception-bg.jpg",
		"videoUrl":       "https://cdn.example.com/inception.mp4",
		"maturityRating": "PG-13",
		"vote_average":   8.8,
		"vote_count":     34000,
		"isTrending":     true,
	}

	// 未登录 401，普通用户 403
	w, _ := do(r, http.MethodPost, "/api/movies", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = do(r, http.MethodPost, "/api/movies", userToken, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 枚举外的类型被校验拒绝
	bad := gin.H{}
	for k, v := range payload {
		bad[k] = v
	}
	bad["genres"] = []string{"telenovela"}
	w, _ = do(r, http.MethodPost, "/api/movies", adminToken, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(r, http.MethodPost, "/api/movies", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	// 创建后取回，字段与输入一致
	w, env = do(r, http.MethodGet, fmt.Sprintf("/api/movies/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Inception", fetched.Title)
	assert.Equal(t, pq.StringArray{"science-fiction", "thriller"}, fetched.Genres)
	assert.Equal(t, 8.8, fetched.VoteAverage)
	assert.True(t, fetched.IsTrending)

	w, env = do(r, http.MethodPut, fmt.Sprintf("/api/movies/%d", created.ID), adminToken, gin.H{
		"title": "Inception (Remastered)",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Inception (Remastered)", updated.Title)
	assert.Equal(t, "A mind-bending heist.", updated.Description)

	w, _ = do(r, http.MethodPut, "/api/movies/9999", adminToken, gin.H{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/movies/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/movies/%d", created.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除后列表缓存已失效
	w, env = do(r, http.MethodGet, "/api/movies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, *env.Count)
}

func TestMyListFlow(t *testing.T) {
	r, repos := setup(t)

	token, _ := registerUser(t, r, "Grace", "grace@example.com")
	kept := seedMovie(t, repos, "Kept", []string{"drama"}, false, false)
	doomed := seedMovie(t, repos, "Doomed", []string{"drama"}, false, false)

	w, _ := do(r, http.MethodGet, "/api/mylist", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodPost, "/api/mylist", token, gin.H{"movieId": kept.ID})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(r, http.MethodPost, "/api/mylist", token, gin.H{"movieId": doomed.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// 重复添加 400，片单长度不变
	w, _ = do(r, http.MethodPost, "/api/mylist", token, gin.H{"movieId": kept.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 不存在的影片 404
	w, _ = do(r, http.MethodPost, "/api/mylist", token, gin.H{"movieId": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := do(r, http.MethodGet, "/api/mylist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *env.Count)

	// 目录删除后，片单读取静默跳过失效引用
	require.NoError(t, repos.Movie.Delete(doomed.ID))
	w, env = do(r, http.MethodGet, "/api/mylist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *env.Count)

	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/mylist/%d", kept.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 移除不在片单中的影片 400
	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/mylist/%d", kept.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUserManagement(t *testing.T) {
	r, repos := setup(t)

	adminToken, adminID := loginAdmin(t, r, repos)
	_, userID := registerUser(t, r, "Heidi", "heidi@example.com")

	w, env := do(r, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *env.Count)

	w, _ = do(r, http.MethodGet, "/api/admin/users/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 自我保护：不能改掉自己的管理员角色，不能删除自己，不能降级自己
	w, _ = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", adminID), adminToken, gin.H{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/demote", adminID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 提升普通用户
	w, env = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/promote", userID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var promoted model.User
	require.NoError(t, json.Unmarshal(env.Data, &promoted))
	assert.Equal(t, "admin", promoted.Role)

	// 已是管理员，重复提升 400
	w, _ = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/promote", userID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 降级其他管理员可以
	w, env = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/demote", userID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var demoted model.User
	require.NoError(t, json.Unmarshal(env.Data, &demoted))
	assert.Equal(t, "user", demoted.Role)

	// 降级普通用户 400
	w, _ = do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/demote", userID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 删除其他用户可以
	w, _ = do(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminStats(t *testing.T) {
	r, repos := setup(t)

	adminToken, _ := loginAdmin(t, r, repos)
	registerUser(t, r, "Ivan", "ivan@example.com")
	seedMovie(t, repos, "Trending One", []string{"action"}, true, false)
	seedMovie(t, repos, "Top One", []string{"drama"}, false, true)
	seedMovie(t, repos, "Plain One", []string{"drama"}, false, false)

	// 普通用户禁止访问
	userToken, _ := registerUser(t, r, "Judy", "judy@example.com")
	w, _ := do(r, http.MethodGet, "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := do(r, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 3, stats.UserStats.Total)
	assert.EqualValues(t, 1, stats.UserStats.Admin)
	assert.EqualValues(t, 2, stats.UserStats.Regular)
	assert.EqualValues(t, 3, stats.MovieStats.Total)
	assert.EqualValues(t, 1, stats.MovieStats.Trending)
	assert.EqualValues(t, 1, stats.MovieStats.TopRated)
}
