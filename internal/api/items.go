package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
	"github.com/okayama-mayu/rails-engine/internal/service"
)

// listItems serves both /items and /items/find_all.
func (h *Handler) listItems(c *gin.Context) {
	f, err := catalog.ParseItemFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.svc.ListItems(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemList(items))
}

func (h *Handler) findItem(c *gin.Context) {
	f, err := catalog.ParseItemFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	it, ok, err := h.svc.FindItem(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, emptyEnvelope)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentItem(it)})
}

func (h *Handler) getItem(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceItem, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	it, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentItem(*it)})
}

func (h *Handler) itemMerchant(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceItem, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	m, err := h.svc.ItemMerchant(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentMerchant(*m)})
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := bindAndValidate(c, &req, h.validate); err != nil {
		writeError(c, err)
		return
	}

	it, err := h.svc.CreateItem(c.Request.Context(), req.toNewItem())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, envelope{Data: presentItem(*it)})
}

func (h *Handler) updateItem(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceItem, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateItemRequest
	if err := bindAndValidate(c, &req, h.validate); err != nil {
		writeError(c, err)
		return
	}

	it, err := h.svc.UpdateItem(c.Request.Context(), id, req.toPatch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentItem(*it)})
}

func (h *Handler) deleteItem(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceItem, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
