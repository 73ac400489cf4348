package httptransport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/duoreg/internal/export"
	"github.com/mmynk/duoreg/internal/proof"
	"github.com/mmynk/duoreg/internal/service"
)

const (
	// ProofField is the multipart field carrying the payment proof.
	ProofField = "comprovante"

	// formOverhead is the room left in the request body for the text fields
	// and multipart framing around the proof file.
	formOverhead = 1 << 20

	// multipartMemory is how much of the form is buffered in memory before
	// parts spill to temp files.
	multipartMemory = 8 << 20
)

const thanksPage = `<!doctype html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Inscrição recebida</title></head>
<body>
<h1>Inscrição recebida!</h1>
<p>Recebemos sua inscrição e o comprovante de pagamento. Você receberá um e-mail quando a inscrição for analisada.</p>
</body>
</html>
`

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := h.maxUpload + formOverhead
	if r.ContentLength > limit {
		writeSubmitError(w, r, service.ErrPayloadTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeSubmitError(w, r, service.ErrPayloadTooLarge)
			return
		}
		slog.WarnContext(ctx, "Invalid registration form", "error", err)
		http.Error(w, "Formulário inválido.", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var upload *proof.Upload
	file, header, err := r.FormFile(ProofField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		slog.WarnContext(ctx, "Invalid proof part", "error", err)
		http.Error(w, "Formulário inválido.", http.StatusBadRequest)
		return
	default:
		defer file.Close()
		upload = &proof.Upload{
			Filename:  header.Filename,
			MediaType: header.Header.Get("Content-Type"),
			Size:      header.Size,
			Body:      file,
		}
	}

	id, err := h.intake.Submit(ctx, url.Values(r.MultipartForm.Value), upload)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}

	slog.InfoContext(ctx, "Registration received", "entry_id", id)
	http.Redirect(w, r, "/obrigado", http.StatusSeeOther)
}

// submitStatus maps an intake error to its HTTP status and the message shown
// to the person filling in the form.
func submitStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateProof):
		return http.StatusConflict, "Este comprovante já foi enviado em outra inscrição."
	case errors.Is(err, service.ErrMissingProof):
		return http.StatusBadRequest, "Envie o comprovante de pagamento."
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, "O comprovante deve ser PDF, JPG, PNG ou WebP."
	case errors.Is(err, service.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "O comprovante excede o tamanho máximo permitido."
	case errors.Is(err, service.ErrMissingCategory):
		return http.StatusBadRequest, "Escolha a categoria da dupla."
	default:
		return http.StatusInternalServerError, "Não foi possível registrar a inscrição. Tente novamente."
	}
}

func writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := submitStatus(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Registration failed", "error", err)
	} else {
		slog.InfoContext(r.Context(), "Registration refused", "status", status, "error", err)
	}
	http.Error(w, msg, status)
}

func (h *Handler) handleThanks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, thanksPage)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f, err := h.uploads.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.WarnContext(r.Context(), "Proof not served", "name", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, rs)
		return
	}
	_, _ = io.Copy(w, f)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := service.ParseFilter(q.Get("category"), q.Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.WriteXLSX(ctx, &buf, filter); err != nil {
		slog.ErrorContext(ctx, "Export failed", "error", err)
		http.Error(w, "Não foi possível gerar a planilha.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(h.now())))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "Health check failed", "error", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = io.WriteString(w, "ok")
}
