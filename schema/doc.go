// Package schema loads bit-field layouts from HCL files.
//
// A schema file holds one or more layout blocks, each describing a
// layout.Type:
//
//	layout "mini_header" {
//	  group_size      = 4
//	  group_separator = "_"
//
//	  segment "first_6" {
//	    start_bit  = 0
//	    bit_length = 6
//	    help       = "first six bits"
//	  }
//
//	  segment "offset" {
//	    start_bit  = var.base + 6
//	    bit_length = 6
//	    signed     = true
//	  }
//	}
//
// Attribute values are HCL expressions. The "var" object holds the values
// supplied with WithVariable and WithVariables.
//
// Optional layout attributes:
//   - group_size, group_separator: default bit-string grouping
//   - size: explicit buffer size in bytes
//   - sizing: "widest" (default) or "last_segment"
package schema
