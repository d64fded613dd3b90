/*
Package mcpserver serves the fragment-tree operations over the Model Context
Protocol.

Three tools are registered:

  - compile: compile one version's document and report validation issues
  - versions: list versions, the latest dated version, ranges and operations
  - template: resolve one operation at one version with defaults applied

Each tree is indexed once per server process and reused across calls until a
call passes refresh=true. Defaults come from OASPECS_* environment
variables (see internal/envconfig).
*/
package mcpserver
