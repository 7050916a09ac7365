package exports

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"boothlead_backend/internal/adapters/storage"
	"boothlead_backend/internal/events"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/platform/httpkit"
	"boothlead_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Module is the exports bounded context module implementing http.Module.
// A nil store disables the archive endpoint but leaves direct download up.
type Module struct {
	leads  *repository.Repository
	store  *storage.MinIOService
	bucket string
	bus    events.Bus
	log    *logger.Logger
}

func NewModule(leadsRepo *repository.Repository, store *storage.MinIOService, bucket string, bus events.Bus, log *logger.Logger) *Module {
	return &Module{leads: leadsRepo, store: store, bucket: bucket, bus: bus, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes mounts the export routes on /api/v1/exports.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/exports")
	rg.GET("/leads.xlsx", m.download)
	rg.POST("/leads", m.archive)
}

// download streams the workbook straight to the client.
func (m *Module) download(c *gin.Context) {
	buf, count, ok := m.render(c)
	if !ok {
		return
	}

	fileName := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())

	m.log.ExportGenerated(count, int64(buf.Len()), "download")
	m.bus.Publish(c.Request.Context(), events.ExportGenerated{
		BaseEvent:   events.NewBaseEvent(),
		LeadCount:   count,
		SizeBytes:   int64(buf.Len()),
		Destination: "download",
	})
}

// archive uploads the workbook to object storage and returns the key plus
// a presigned download link.
func (m *Module) archive(c *gin.Context) {
	if m.store == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "object storage is not configured", nil)
		return
	}

	buf, count, ok := m.render(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	fileName := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("2006-01-02"))
	objectKey, err := m.store.UploadFile(ctx, m.bucket, "exports", fileName, xlsxContentType, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		m.log.Error("failed to upload export", "error", err)
		httpkit.Error(c, http.StatusBadGateway, "failed to archive export", nil)
		return
	}

	link, err := m.store.GenerateDownloadURL(ctx, m.bucket, objectKey)
	if err != nil {
		m.log.Error("failed to presign export", "error", err, "objectKey", objectKey)
	}

	m.log.ExportGenerated(count, int64(buf.Len()), "minio")
	m.bus.Publish(ctx, events.ExportGenerated{
		BaseEvent:   events.NewBaseEvent(),
		LeadCount:   count,
		SizeBytes:   int64(buf.Len()),
		Destination: "minio",
		ObjectKey:   objectKey,
	})

	resp := gin.H{
		"objectKey": objectKey,
		"leadCount": count,
		"sizeBytes": buf.Len(),
	}
	if link != nil {
		resp["downloadUrl"] = link.URL
		resp["expiresAt"] = link.ExpiresAt
	}
	c.JSON(http.StatusCreated, resp)
}

// render loads every lead and serializes the workbook into memory.
func (m *Module) render(c *gin.Context) (*bytes.Buffer, int, bool) {
	stored, err := m.leads.ListAll(c.Request.Context())
	if err != nil {
		m.log.DatabaseError("list leads for export", err)
		httpkit.Error(c, http.StatusInternalServerError, "internal error", nil)
		return nil, 0, false
	}

	snapshots := make([]domain.Lead, 0, len(stored))
	for _, s := range stored {
		snapshots = append(snapshots, s.Lead)
	}

	file, err := BuildWorkbook(snapshots)
	if err != nil {
		m.log.Error("failed to build export workbook", "error", err)
		httpkit.Error(c, http.StatusInternalServerError, "internal error", nil)
		return nil, 0, false
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		m.log.Error("failed to serialize export workbook", "error", err)
		httpkit.Error(c, http.StatusInternalServerError, "internal error", nil)
		return nil, 0, false
	}

	return &buf, len(snapshots), true
}
