// Package model defines the contact form state shared by the submitter, the
// validators and every render sink. Values, Touched and Errors are plain value
// types so snapshots handed to renderers never alias the live form. The
// FormModel describes how the three fields are presented (labels, widgets,
// length hints) and is built from the embedded OpenAPI document in
// pkg/schema. Error visibility is derived with VisibleErrors rather than
// stored, keeping touched flags and error messages independent.
package model
