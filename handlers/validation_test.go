package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testRouter wires the handlers behind a stub auth middleware so request
// validation can be exercised without a database.
func testRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	stubAuth := func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	}

	router.POST("/users/signup", Signup)
	router.POST("/users/login", Login)
	router.GET("/users/search", SearchUsers)
	router.POST("/users/follow", stubAuth, Follow)
	router.POST("/posts", stubAuth, CreatePost)
	router.POST("/posts/like", stubAuth, LikePost)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertEnvelope(t *testing.T, w *httptest.ResponseRecorder, wantStatus int) {
	t.Helper()
	if w.Code != wantStatus {
		t.Fatalf("status = %d, want %d, body %s", w.Code, wantStatus, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Success {
		t.Fatal("error response must carry success:false")
	}
	if resp.Message == "" {
		t.Fatal("error response must carry a message")
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	router := testRouter("")

	cases := []string{
		`{}`,
		`{"email":"a@b.com","password":"longenough"}`,
		`{"email":"a@b.com","name":"Alice"}`,
		`{"password":"longenough","name":"Alice"}`,
	}
	for _, body := range cases {
		assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/signup", body), http.StatusBadRequest)
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	router := testRouter("")

	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/login", `{}`), http.StatusBadRequest)
	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/login", `{"email":"a@b.com"}`), http.StatusBadRequest)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	router := testRouter("")

	req := httptest.NewRequest(http.MethodGet, "/users/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assertEnvelope(t, w, http.StatusBadRequest)
}

func TestFollowRequiresAuthentication(t *testing.T) {
	router := testRouter("")

	body := `{"userId":"` + primitive.NewObjectID().Hex() + `"}`
	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/follow", body), http.StatusUnauthorized)
}

func TestFollowRejectsMalformedTarget(t *testing.T) {
	router := testRouter(primitive.NewObjectID().Hex())

	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/follow", `{"userId":"not-an-id"}`), http.StatusBadRequest)
	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/follow", `{}`), http.StatusBadRequest)
}

func TestFollowRejectsSelf(t *testing.T) {
	self := primitive.NewObjectID().Hex()
	router := testRouter(self)

	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/users/follow", `{"userId":"`+self+`"}`), http.StatusBadRequest)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	router := testRouter(primitive.NewObjectID().Hex())

	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/posts", `{"content":{}}`), http.StatusBadRequest)
	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/posts", `{}`), http.StatusBadRequest)
}

func TestLikeRejectsMalformedPostID(t *testing.T) {
	router := testRouter(primitive.NewObjectID().Hex())

	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/posts/like", `{"postId":"nope"}`), http.StatusBadRequest)
	assertEnvelope(t, doJSON(t, router, http.MethodPost, "/posts/like", `{}`), http.StatusBadRequest)
}
