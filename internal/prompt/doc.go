// Package prompt assembles the system instruction and per-request messages
// sent to the generation backend.
//
// The system instruction is static: base constraints plus integration
// guidelines (charts, maps, embedded AI chat, galleries) and the editing-mode
// contracts. The Builder picks one of four message shapes per request,
// depending on whether content exists, a component is selected, or a stock
// template is being personalized.
package prompt
