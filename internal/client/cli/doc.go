// Package cli is the interactive LoveLab terminal client.
//
// It wires configuration, the local database, the server connection and the
// feature services, then runs a REPL. Commands:
//
//	calc [a b]     love calculator
//	quiz           red flag quiz
//	wall           show the confession wall
//	confess        post an anonymous confession
//	heart <n>      add a heart to confession n of the last wall
//	refresh        re-fetch the wall
//	practice       one-time proposal practice (camera)
//	share          share the last result
//	nickname [n]   change nickname
//	help, exit
//
// Nothing the server does is fatal: failures print a message and the REPL
// keeps going. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli
