package team

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/DhavalSuthar-24/rosterhub/pkg/token"
)

const testJWTSecret = "test-secret"

type staticRoles map[uint][]string

func (r staticRoles) GetUserRoles(_ context.Context, userID uint) ([]string, error) {
	return r[userID], nil
}

func (s *RosterTestSuite) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	TeamRoutes(r.Group("/"), s.db, testJWTSecret, Services{
		Teams:       s.teams,
		Invitations: s.invitations,
		Roles:       staticRoles{s.id("outsider"): {"admin"}},
	}, func(c *gin.Context) { c.Next() })
	return r
}

func (s *RosterTestSuite) do(r *gin.Engine, method, path, as string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		tok, err := token.GenerateJWT(s.id(as), testJWTSecret, 5)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (s *RosterTestSuite) errorBody(w *httptest.ResponseRecorder) responses.ErrorResponse {
	var body responses.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *RosterTestSuite) TestHTTP_CreateTeam() {
	r := s.router()

	w := s.do(r, http.MethodPost, "/teams", "", gin.H{"name": "Rovers", "team_size": 7})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(r, http.MethodPost, "/teams", "owner", gin.H{"name": "Rovers", "team_size": 7})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data Team `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("2-3-1", created.Data.Formation)
	s.Equal(s.id("owner"), created.Data.CreatedByID)

	w = s.do(r, http.MethodPost, "/teams", "owner", gin.H{"name": "Rovers", "team_size": 12})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("invalid_team_size", s.errorBody(w).Reason)

	w = s.do(r, http.MethodPost, "/teams", "owner", gin.H{"name": "Rovers"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("invalid_team_size", s.errorBody(w).Reason)

	w = s.do(r, http.MethodPost, "/teams", "owner", gin.H{"team_size": 7})
	s.Equal(http.StatusBadRequest, w.Code)
	body := s.errorBody(w)
	s.Equal(http.StatusBadRequest, body.Code)
	s.Equal("Validation failed", body.Message)
	s.Equal("is required", body.Errors["name"])
}

func (s *RosterTestSuite) TestHTTP_ErrorMapping() {
	team := s.newRoster()
	r := s.router()
	base := fmt.Sprintf("/teams/%d", team.ID)

	w := s.do(r, http.MethodDelete, base, "captain", nil)
	s.Equal(http.StatusForbidden, w.Code)
	body := s.errorBody(w)
	s.Equal("permission_denied", body.Kind)
	s.Equal("not_owner", body.Reason)

	w = s.do(r, http.MethodPut, base+"/captain", "owner", gin.H{"user_id": s.id("outsider")})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("player", s.errorBody(w).Entity)

	w = s.do(r, http.MethodDelete, fmt.Sprintf("%s/players/%d", base, s.id("owner")), "owner", nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("self_action_forbidden", s.errorBody(w).Reason)

	for _, size := range []int{0, 5, 12} {
		w = s.do(r, http.MethodPut, base+"/size", "captain", gin.H{"team_size": size})
		s.Equal(http.StatusUnprocessableEntity, w.Code, "size %d", size)
		s.Equal("invalid_team_size", s.errorBody(w).Reason, "size %d", size)
	}

	w = s.do(r, http.MethodPost, base+"/leave", "owner", nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("owner_must_transfer_or_delete", s.errorBody(w).Reason)

	w = s.do(r, http.MethodGet, "/teams/abc", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(r, http.MethodGet, "/teams/999", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("team", s.errorBody(w).Entity)
}

func (s *RosterTestSuite) TestHTTP_RosterFlow() {
	team := s.newRoster()
	r := s.router()
	base := fmt.Sprintf("/teams/%d", team.ID)

	w := s.do(r, http.MethodPost, base+"/invitations", "auth", gin.H{"user_id": s.id("outsider")})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var inv struct {
		Data Invitation `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &inv))

	w = s.do(r, http.MethodPost, base+"/invitations", "owner", gin.H{"user_id": s.id("outsider")})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("duplicate_pending_invitation", s.errorBody(w).Reason)

	w = s.do(r, http.MethodGet, "/invitations/me?status=pending", "outsider", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	accept := fmt.Sprintf("/invitations/%d/accept", inv.Data.ID)
	w = s.do(r, http.MethodPost, accept, "member", nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(r, http.MethodPost, accept, "outsider", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(r, http.MethodGet, base+"/players", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var players struct {
		Data []Player `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &players))
	s.Len(players.Data, 6)

	w = s.do(r, http.MethodPost, base+"/authorized-members", "owner", gin.H{"user_id": s.id("outsider")})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.do(r, http.MethodDelete, fmt.Sprintf("%s/authorized-members/%d", base, s.id("outsider")), "owner", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(r, http.MethodPost, base+"/leave", "outsider", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.False(s.player(team.ID, "outsider").IsActive)
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestHTTP_AdminDelete() {
	team := s.newRoster()
	r := s.router()
	path := fmt.Sprintf("/admin/teams/%d", team.ID)

	w := s.do(r, http.MethodDelete, path, "owner", nil)
	s.Equal(http.StatusForbidden, w.Code, "owners are not admins")

	w = s.do(r, http.MethodDelete, path, "outsider", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
