// @title        Groomer Portal API
// @version      1.0
// @description  API de administración de clientes del portal de grooming.
// @BasePath     /
package main
