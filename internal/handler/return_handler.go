package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"lekha/internal/csvexport"
	"lekha/internal/domain"
	"lekha/internal/service"
)

// ReturnHandler handles statutory return endpoints.
type ReturnHandler struct {
	returnService service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Generate handles POST /api/v1/returns/generate
// @Summary      Generate statutory return
// @Description  Aggregates outward supplies for a period and stores the return; regeneration overwrites
// @Tags         returns
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.TaxReturn}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /returns/generate [post]
func (h *ReturnHandler) Generate(c *gin.Context) {
	companyID, userID, caps, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Period     string `json:"period" binding:"required"`
		ReturnType string `json:"return_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "period and return_type are required")
		return
	}

	ret, err := h.returnService.Generate(c.Request.Context(), &service.GenerateReturnInput{
		CompanyID:   companyID,
		GeneratedBy: userID,
		Caps:        caps,
		Period:      req.Period,
		ReturnType:  domain.ReturnType(req.ReturnType),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// GetByPeriod handles GET /api/v1/returns/:period/:type
func (h *ReturnHandler) GetByPeriod(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ret, err := h.returnService.GetByPeriod(c.Request.Context(), companyID,
		c.Param("period"), domain.ReturnType(c.Param("type")))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// Export handles GET /api/v1/returns/:period/:type/export
func (h *ReturnHandler) Export(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period := c.Param("period")
	ret, err := h.returnService.GetByPeriod(c.Request.Context(), companyID,
		period, domain.ReturnType(c.Param("type")))
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteReturns([]domain.TaxReturn{*ret}); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	name := string(ret.ReturnType) + "_" + period
	c.Header("Content-Disposition", "attachment; filename="+csvexport.BuildFilename(name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// List handles GET /api/v1/returns
// @Summary      List statutory returns
// @Description  Lists generated returns, optionally filtered by year and return type; format=csv exports
// @Tags         returns
// @Produce      json
// @Param        year query string false "Calendar year (YYYY)"
// @Param        type query string false "Return type: gstr1 or gstr3b"
// @Param        format query string false "Response format: json or csv" default(json)
// @Success      200 {object} APIResponse{data=[]domain.TaxReturn}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /returns [get]
func (h *ReturnHandler) List(c *gin.Context) {
	companyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var rtype *domain.ReturnType
	if typeStr := c.Query("type"); typeStr != "" {
		t := domain.ReturnType(typeStr)
		rtype = &t
	}

	returns, err := h.returnService.List(c.Request.Context(), companyID, c.Query("year"), rtype)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteReturns(returns); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+csvexport.BuildFilename("returns"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	RespondOK(c, returns)
}
