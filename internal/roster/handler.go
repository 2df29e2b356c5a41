package roster

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/empleados", h.CreateEmpleado)
	r.GET("/empleados", h.ListEmpleados)
	r.GET("/empleados/stream", h.StreamEmpleados)
	r.GET("/empleados/stats", h.GetStats)
	r.GET("/empleados/:doc_id", h.GetEmpleado)
	r.PUT("/empleados/:doc_id", h.UpdateEmpleado)
	r.DELETE("/empleados/:doc_id", h.DeleteEmpleado)
}

// @Summary 従業員の登録
// @Tags empleados
// @Accept json
// @Produce json
// @Success 201 {object} EmpleadoResponse
// @Router /empleados [post]
func (h *Handler) CreateEmpleado(c *gin.Context) {
	var req CreateEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(ErrCodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/empleados/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// @Summary 名簿の現在値と集計
// @Tags empleados
// @Produce json
// @Success 200 {object} ListResponse
// @Router /empleados [get]
func (h *Handler) ListEmpleados(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List(c.Request.Context()))
}

// @Summary 名簿変化のプッシュ購読（SSE）
// @Tags empleados
// @Produce text/event-stream
// @Router /empleados/stream [get]
func (h *Handler) StreamEmpleados(c *gin.Context) {
	type event struct {
		snap Snapshot
		err  error
	}
	ch := make(chan event, 8)
	done := c.Request.Context().Done()

	cancel := h.svc.Subscribe(func(snap Snapshot, err error) {
		select {
		case ch <- event{snap: snap, err: err}:
		case <-done:
		}
	})
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-ch:
			if ev.err != nil {
				c.SSEvent("error", apiErrFrom(ev.err))
				return true
			}
			c.SSEvent("snapshot", toListDTO(ev.snap))
			return true
		case <-done:
			return false
		}
	})
}

// @Summary 集計（総数・出欠・平均時間）
// @Tags empleados
// @Produce json
// @Success 200 {object} ResumenResponse
// @Router /empleados/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	res, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary 従業員1件の取得
// @Tags empleados
// @Produce json
// @Success 200 {object} EmpleadoResponse
// @Router /empleados/{doc_id} [get]
func (h *Handler) GetEmpleado(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("doc_id"))
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary 従業員の更新（変更フィールドのみ反映）
// @Tags empleados
// @Accept json
// @Produce json
// @Success 200 {object} EmpleadoResponse
// @Router /empleados/{doc_id} [put]
func (h *Handler) UpdateEmpleado(c *gin.Context) {
	var req UpdateEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(ErrCodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("doc_id"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary 従業員の削除（冪等）
// @Tags empleados
// @Success 204
// @Router /empleados/{doc_id} [delete]
func (h *Handler) DeleteEmpleado(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("doc_id")); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== helpers =====

type errDTO struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(err error) errDTO {
	if de, ok := err.(*DomainError); ok {
		return apiErr(de.Code, de.Message)
	}
	return apiErr(ErrCodeInternal, err.Error())
}
