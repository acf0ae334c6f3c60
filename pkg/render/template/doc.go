// Package template defines the template rendering seam used by the page
// renderer so alternative engines can be swapped in without touching page
// logic.
package template
