package response

import (
	"fmt"
	"net/http"
	"net/url"
	"resalab/shared/constant"
	"resalab/shared/dto"
	"strconv"
	"strings"
)

// WithPage sends the page content as a JSON array with X-Total-Count and Link headers.
func WithPage[T any](writer http.ResponseWriter, request *http.Request, page dto.Page[T]) {
	writer.Header().Set(constant.ResponseHeaderTotalCount, strconv.Itoa(page.TotalElements))
	writer.Header().Set(constant.ResponseHeaderLink, PaginationLink(request.URL, page))

	WithJSON(writer, http.StatusOK, page.Content)
}

// PaginationLink renders the RFC 5988 Link value with next, prev, last and first relations.
// Other query parameters, such as sort, are carried over to every link.
func PaginationLink[T any](base *url.URL, page dto.Page[T]) string {
	lastPage := max(page.TotalPages()-1, 0)
	links := make([]string, 0, 4) //nolint:mnd

	if page.HasNext() {
		links = append(links, pageLink(base, page.Params.Page+1, page.Params.Size, "next"))
	}

	if page.HasPrevious() {
		links = append(links, pageLink(base, page.Params.Page-1, page.Params.Size, "prev"))
	}

	links = append(links,
		pageLink(base, lastPage, page.Params.Size, "last"),
		pageLink(base, 0, page.Params.Size, "first"),
	)

	return strings.Join(links, ",")
}

func pageLink(base *url.URL, page, size int, rel string) string {
	query := base.Query()
	query.Set(constant.RequestParamPage, strconv.Itoa(page))
	query.Set(constant.RequestParamSize, strconv.Itoa(size))

	target := url.URL{Path: base.Path, RawQuery: query.Encode()}

	return fmt.Sprintf("<%s>; rel=%q", target.String(), rel)
}
