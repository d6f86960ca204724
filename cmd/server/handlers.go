package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/precificalc/internal/display"
	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

const msgNothingToExport = "Nenhum dado para exportar"

type methodOption struct {
	Value    pricing.Method
	Label    string
	Selected bool
}

type resultsView struct {
	Method            pricing.Method
	TotalCost         float64
	MarginPrice       float64
	MarkupPrice       float64
	ContributionPrice float64
	RecommendedPrice  float64
	Profit            float64
	MarginPercentage  float64
	Comparison        string
	ComparisonAbove   bool
}

type calculatorViewData struct {
	baseViewData
	Form    calculatorForm
	Methods []methodOption
	Results *resultsView
}

type productRow struct {
	ID            string
	Name          string
	Method        pricing.Method
	TotalCost     float64
	FinalPrice    float64
	DesiredMargin float64
	CreatedAt     time.Time
}

type productsViewData struct {
	baseViewData
	Query    string
	Products []productRow
	Count    int
}

type productEditViewData struct {
	baseViewData
	ID      string
	Form    calculatorForm
	Methods []methodOption
}

type loginViewData struct {
	baseViewData
	Email string
}

func methodOptions(selected string) []methodOption {
	if selected == "" {
		selected = string(pricing.MethodMargin)
	}
	options := make([]methodOption, 0, len(pricing.Methods))
	for _, m := range pricing.Methods {
		options = append(options, methodOption{
			Value:    m,
			Label:    m.Label(),
			Selected: string(m) == selected,
		})
	}
	return options
}

func newResultsView(in pricing.Inputs, method pricing.Method, res pricing.Results) *resultsView {
	view := &resultsView{
		Method:            method,
		TotalCost:         pricing.TotalCost(in),
		MarginPrice:       res.MarginPrice,
		MarkupPrice:       res.MarkupPrice,
		ContributionPrice: res.ContributionPrice,
		RecommendedPrice:  res.RecommendedPrice,
		Profit:            res.Profit,
		MarginPercentage:  res.MarginPercentage,
	}
	if c, ok := display.CompareWithCompetitor(res.RecommendedPrice, in.CompetitorPrice); ok {
		view.Comparison = c.String()
		view.ComparisonAbove = c.Above
	}
	return view
}

func (s *server) renderCalculator(w http.ResponseWriter, r *http.Request, status int, form calculatorForm, results *resultsView, errMsg string) {
	base := s.baseView(r)
	if errMsg != "" {
		base.ErrorMessage = errMsg
	}
	s.renderTemplate(w, status, "calculator.html", calculatorViewData{
		baseViewData: base,
		Form:         form,
		Methods:      methodOptions(form.Method),
		Results:      results,
	})
}

func (s *server) handleCalculatorForm(w http.ResponseWriter, r *http.Request) {
	s.renderCalculator(w, r, http.StatusOK, newCalculatorForm(pricing.DefaultInputs(), pricing.MethodMargin), nil, "")
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readCalculatorForm(r)
	in, method, err := form.inputs()
	if err != nil {
		s.renderCalculator(w, r, http.StatusBadRequest, form, nil, err.Error())
		return
	}

	res, err := s.products.Calculate(in, method)
	if err != nil {
		s.renderCalculator(w, r, http.StatusBadRequest, form, nil, capitalize(err.Error()))
		return
	}

	s.renderCalculator(w, r, http.StatusOK, form, newResultsView(in, method, res), "")
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readCalculatorForm(r)
	in, method, err := form.inputs()
	if err != nil {
		s.renderCalculator(w, r, http.StatusBadRequest, form, nil, err.Error())
		return
	}

	if _, err := s.products.Save(r.Context(), in, method); err != nil {
		if products.IsValidationError(err) {
			s.renderCalculator(w, r, http.StatusBadRequest, form, nil, capitalize(err.Error()))
			return
		}
		s.logger.Error("save product", zap.Error(err))
		http.Error(w, "failed to save product", http.StatusInternalServerError)
		return
	}

	redirectWithMessage(w, r, "/products", "success", "Produto salvo com sucesso.")
}

func (s *server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.products.List(r.Context(), query)
	if err != nil {
		s.logger.Error("list products", zap.Error(err))
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	rows := make([]productRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, productRow{
			ID:            p.ID,
			Name:          p.Name,
			Method:        p.PricingMethod(),
			TotalCost:     p.TotalCost(),
			FinalPrice:    p.FinalPrice,
			DesiredMargin: p.DesiredMargin,
			CreatedAt:     p.CreatedAt,
		})
	}

	s.renderTemplate(w, http.StatusOK, "products.html", productsViewData{
		baseViewData: s.baseView(r),
		Query:        query,
		Products:     rows,
		Count:        len(rows),
	})
}

func (s *server) renderProductEdit(w http.ResponseWriter, r *http.Request, status int, id string, form calculatorForm, errMsg string) {
	base := s.baseView(r)
	if errMsg != "" {
		base.ErrorMessage = errMsg
	}
	s.renderTemplate(w, status, "product_edit.html", productEditViewData{
		baseViewData: base,
		ID:           id,
		Form:         form,
		Methods:      methodOptions(form.Method),
	})
}

func (s *server) handleProductEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.products.Get(r.Context(), id)
	if errors.Is(err, products.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("get product", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	s.renderProductEdit(w, r, http.StatusOK, p.ID, newCalculatorForm(p.Inputs(), p.PricingMethod()), "")
}

func (s *server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readCalculatorForm(r)
	in, method, err := form.inputs()
	if err != nil {
		s.renderProductEdit(w, r, http.StatusBadRequest, id, form, err.Error())
		return
	}

	if _, err := s.products.Update(r.Context(), id, in, method); err != nil {
		switch {
		case errors.Is(err, products.ErrNotFound):
			http.NotFound(w, r)
		case products.IsValidationError(err):
			s.renderProductEdit(w, r, http.StatusBadRequest, id, form, capitalize(err.Error()))
		default:
			s.logger.Error("update product", zap.String("id", id), zap.Error(err))
			http.Error(w, "failed to update product", http.StatusInternalServerError)
		}
		return
	}

	redirectWithMessage(w, r, "/products", "success", "Produto atualizado com sucesso.")
}

func (s *server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.products.Delete(r.Context(), id)
	if errors.Is(err, products.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("delete product", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}

	redirectWithMessage(w, r, "/products", "success", "Produto removido.")
}

type exportFormat struct {
	contentType string
	write       func(w io.Writer, list []products.Product) error
}

var exportFormats = map[string]exportFormat{
	"json": {
		contentType: "application/json",
		write:       products.WriteJSON,
	},
	"csv": {
		contentType: "text/csv; charset=utf-8",
		write:       products.WriteCSV,
	},
	"xlsx": {
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		write:       products.WriteXLSX,
	},
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "format")
	format, ok := exportFormats[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	list, err := s.products.List(r.Context(), "")
	if err != nil {
		s.logger.Error("list products for export", zap.Error(err))
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		redirectWithMessage(w, r, "/products", "error", msgNothingToExport)
		return
	}

	var buf bytes.Buffer
	if err := format.write(&buf, list); err != nil {
		s.logger.Error("export products", zap.String("format", name), zap.Error(err))
		http.Error(w, "failed to export products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="produtos-precificalc.`+name+`"`)
	_, _ = buf.WriteTo(w)
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if userFromContext(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{baseViewData: s.baseView(r)})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if !s.auth.validateCredentials(email, password) {
		base := s.baseView(r)
		base.ErrorMessage = "Informe e-mail e senha."
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", loginViewData{baseViewData: base, Email: email})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	http.Redirect(w, r, path+"?"+kind+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// capitalize upper-cases the first letter of a sentinel error message for
// display.
func capitalize(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
