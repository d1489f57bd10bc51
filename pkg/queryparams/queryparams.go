// Package queryparams concentra paginação e ordenação de listagens.
package queryparams

// Valores padrão das listagens do painel.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams são os parâmetros de listagem vindos da query string.
type ListParams struct {
	Page    int    `query:"page" form:"page"`
	PerPage int    `query:"per_page" form:"per_page"`
	SortBy  string `query:"sort_by" form:"sort_by"`
	OrderBy string `query:"order_by" form:"order_by"`
	Name    string `query:"name" form:"name"`
	Status  string `query:"status" form:"status"`
}

// DefaultListParams devolve parâmetros saneados com a ordenação indicada.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate normaliza valores fora de faixa no próprio receptor.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
}

// CalculateOffset devolve o deslocamento SQL da página atual.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta descreve a página retornada.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult embala os dados de uma página com seus metadados.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages arredonda para cima o total de páginas.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}
