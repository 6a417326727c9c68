/*
Package launcher implements the local bootstrap launcher of the Equipment Tracker server.

The launcher installs the Python requirements declared by the server, starts it as a
foreground child process and keeps the console open once the server stops.

The project has three main source packages:
`cmd`: Main applications.
`internal`: Private application and library code.
`pkg`: Library code that's ok to use by external applications
*/
package launcher
