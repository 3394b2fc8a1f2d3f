package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
	"github.com/okayama-mayu/rails-engine/internal/service"
)

func (h *Handler) listMerchants(c *gin.Context) {
	merchants, err := h.svc.ListMerchants(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, merchantList(merchants))
}

func (h *Handler) findMerchant(c *gin.Context) {
	name, err := catalog.ParseMerchantQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	m, ok, err := h.svc.FindMerchant(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, emptyEnvelope)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentMerchant(m)})
}

func (h *Handler) findAllMerchants(c *gin.Context) {
	name, err := catalog.ParseMerchantQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	merchants, err := h.svc.FindAllMerchants(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, merchantList(merchants))
}

func (h *Handler) getMerchant(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceMerchant, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	m, err := h.svc.GetMerchant(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: presentMerchant(*m)})
}

func (h *Handler) merchantItems(c *gin.Context) {
	id, err := catalog.ParseID(service.ResourceMerchant, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	f, err := catalog.ParseItemFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.svc.MerchantItems(c.Request.Context(), id, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemList(items))
}
