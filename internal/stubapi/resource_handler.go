package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// required lists the keys a POST body must carry per collection.
var required = map[string][]string{
	Clients:    {"nom"},
	Ecoles:     {"nom"},
	Formateurs: {"nom", "prenom"},
	Sessions:   {"titre", "date_debut", "date_fin"},
	Users:      {"email", "password", "nom", "prenom"},
}

// resourceHandler serves the CRUD routes of one collection.
type resourceHandler struct {
	server     *Server
	collection string
}

func (h *resourceHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.server.store.list(h.collection))
}

func (h *resourceHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.server.store.get(h.collection, id)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *resourceHandler) create(c *gin.Context) {
	body, ok := bindRecord(c)
	if !ok {
		return
	}
	for _, key := range required[h.collection] {
		if v, present := body[key]; !present || v == nil || v == "" {
			abortWithError(c, http.StatusBadRequest, "Missing field: "+key)
			return
		}
	}

	if h.collection == Users {
		email, _ := body["email"].(string)
		password, _ := body["password"].(string)
		delete(body, "password")
		created, err := h.server.store.addUser(email, password, body)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				abortWithError(c, http.StatusConflict, err.Error())
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Could not create user")
			return
		}
		c.JSON(http.StatusCreated, created)
		return
	}

	if h.collection == Clients || h.collection == Ecoles {
		if _, present := body["actif"]; !present {
			body["actif"] = true
		}
	}
	if h.collection == Formateurs {
		if _, present := body["externe"]; !present {
			body["externe"] = false
		}
	}
	c.JSON(http.StatusCreated, h.server.store.insert(h.collection, body))
}

func (h *resourceHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	patch, ok := bindRecord(c)
	if !ok {
		return
	}
	delete(patch, "password")
	r, err := h.server.store.update(h.collection, id, patch)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *resourceHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.server.store.delete(h.collection, id); err != nil {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// sessions serves /{collection}/{id}/sessions.
func (h *resourceHandler) sessions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.server.store.get(h.collection, id); err != nil {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, h.server.store.listWhere(Sessions, foreignKeys[h.collection], id))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// bindRecord decodes the request body as a JSON object, keeping numbers exact.
func bindRecord(c *gin.Context) (record, bool) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var body record
	if err := dec.Decode(&body); err != nil || body == nil {
		abortWithError(c, http.StatusBadRequest, "Body must be a JSON object")
		return nil, false
	}
	for k, v := range body {
		if s, ok := v.(string); ok {
			body[k] = strings.TrimSpace(s)
		}
	}
	return body, true
}
