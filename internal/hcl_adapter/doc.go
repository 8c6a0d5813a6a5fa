// Package hcl_adapter decodes HCL rule files into the format-agnostic
// config.Model.
//
//	scope "EQUIPMENT" { parent = "GLOBAL" }
//	variable "STR" { format = "INTEGER" }
//	object "skill" "Balance" {}
//	modify "STR" {
//	  identifier = "ADD"
//	  value      = "3+VAR1"
//	}
package hcl_adapter
