// Package http provides the JSON admin API for pages, page sections, and
// homepage sections.
//
// Routes mount under /admin/api by default and are scoped by site key:
//   - Sites: /sites
//   - Pages: /sites/{site}/pages, /sites/{site}/pages/{id}, /sites/{site}/pages/{id}/toggle
//   - Page sections: /sites/{site}/pages/{id}/sections, /sites/{site}/pages/{id}/sections/order,
//     /sites/{site}/pages/{id}/sections/{sectionID}, /sites/{site}/pages/{id}/sections/{sectionID}/toggle
//   - Homepage sections: /sites/{site}/homepage-sections, /sites/{site}/homepage-sections/order,
//     /sites/{site}/homepage-sections/{id}, /sites/{site}/homepage-sections/{id}/cards,
//     /sites/{site}/homepage-sections/{id}/toggle
//
// Host applications can register handlers on their own mux as needed.
package http
