package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxPageSize caps the 'limit' URL parameter at the request boundary.
const maxPageSize = 100

// parseLimitAndOffset inspects the URL parameters and determines values for
// limit and offset of the result set.
func parseLimitAndOffset(c *gin.Context) (limit int, offset int, success bool) {
	limit = 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return 0, 0, false
		}
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid offset parameter"})
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// parseID reads the numeric ':id' path parameter.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// listContacts responds with a page of the caller's contacts as JSON.
//
//	> curl "http://localhost:8080/api/contacts?limit=20&offset=60" --header "Authorization: Bearer <token>"
func (s *Server) listContacts(c *gin.Context) {
	userID, _ := userIDFrom(c)
	limit, offset, ok := parseLimitAndOffset(c)
	if !ok {
		return
	}
	contacts, err := s.contacts.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

// createContact inserts the contact specified in the request's JSON. It
// responds with the full contact data including the newly assigned id, or
// 409 when the caller already has a contact with that email.
func (s *Server) createContact(c *gin.Context) {
	userID, _ := userIDFrom(c)
	var req contactRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid birthday, want YYYY-MM-DD"})
		return
	}
	contact, err := s.contacts.Create(c.Request.Context(), userID, in)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(*contact))
}

// getContact locates the caller's contact whose id matches the request URL.
func (s *Server) getContact(c *gin.Context) {
	userID, _ := userIDFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := s.contacts.Get(c.Request.Context(), userID, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(*contact))
}

// updateContact replaces every field of the contact with the values from
// the request's JSON and responds with the new state. Partial updates are
// not supported.
func (s *Server) updateContact(c *gin.Context) {
	userID, _ := userIDFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid birthday, want YYYY-MM-DD"})
		return
	}
	contact, err := s.contacts.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(*contact))
}

// deleteContact removes the caller's contact and answers 204.
func (s *Server) deleteContact(c *gin.Context) {
	userID, _ := userIDFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := s.contacts.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// searchByEmail finds the single contact with that email, 404 otherwise.
func (s *Server) searchByEmail(c *gin.Context) {
	userID, _ := userIDFrom(c)
	contact, err := s.contacts.GetByEmail(c.Request.Context(), userID, c.Param("email"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(*contact))
}

// searchByFirstName finds contacts with exactly that first name. An empty
// result answers 404, matching the email search.
func (s *Server) searchByFirstName(c *gin.Context) {
	userID, _ := userIDFrom(c)
	contacts, err := s.contacts.SearchFirstName(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if len(contacts) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

// searchByLastName finds contacts with exactly that last name.
func (s *Server) searchByLastName(c *gin.Context) {
	userID, _ := userIDFrom(c)
	contacts, err := s.contacts.SearchLastName(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if len(contacts) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

// upcomingBirthdays lists contacts with a birthday in the next 7 days.
// An empty window answers 404.
func (s *Server) upcomingBirthdays(c *gin.Context) {
	userID, _ := userIDFrom(c)
	contacts, err := s.contacts.UpcomingBirthdays(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if len(contacts) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}
