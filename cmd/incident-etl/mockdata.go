package main

// mockReports holds one synthetic communiqué per operator dialect,
// mirroring the text layout PDF extraction yields for each format. The
// second Pluspetrol report carries coordinates outside the basin so a full
// run exercises the rejection path too.
var mockReports = map[string]string{
	"comunicado_ypf_0000123456.txt": `Res. 24-04 / Dec. 437-93 / Res. 177-10
Comunicado Incidente Nº 0000123456
Informe Preliminar Mendoza
INFORME DEL INCIDENTE
Fecha de ocurrencia: 10/10/2025
Hora de ocurrencia: 10:00
Operador: YPF S.A.
Yacimiento: YACIMIENTO FICTICIO OESTE
Área concesionada: BLOQUE SIMULADO
Tipo de instalación: CAÑERIA CONDUCCIÓN
Subtipo de incidente: DERRAME DE AGUA DE PRODUCCIÓN
Magnitud del Incidente: Menor
Descripción: Se observa perdida en linea conducción pozo sumidero MOCK.X-3
INFORMACIÓN GEOGRÁFICA
Grados y decimales: Latitud (S): 37.333333° Longitud (W): 69.050000°
VOLUMEN
Volumen m3 derramado: 8.5000
% Agua contenido: 99.8000
Volumen m3 recuperado: 1.0000
Área m2: 1250.00
Recursos afectados: Suelo, Cauce aluvional
`,

	"comunicado_aconcagua_ch28.txt": `Comunicación de Incidentes Ambientales
Operador Aconcagua Energía S.A.
Nombre del área en recepción o Área Simulada Norte
Nombre del yacimiento Barrancas Mock
Fecha de Ocurrencia 08/09/2025
Hora de Ocurrencia 18:00
Tipo de Incidente Derrame
Detalle del incidente Se detecta pérdida de fluido en línea de conducción del pozo CH-28.
Tipo de instalación involucrada Cañería de conducción
Subtipo de instalación involucrada CH-28
Latitud Decimal -33.3465
Longitud Decimal -68.9873
Volumen de líquido derramado 1,5
Volumen de fluido recuperado 0
% de Agua 48
Superficie aprox. afectada 50
PPM 0
`,

	"comunicado_pluspetrol_01-26.txt": `Planilla de Comunicación de Accidentes
COMUNICADO N°: 01-26
OPERADOR: Pluspetrol S.A.
FECHA: 15/01/2026
HORA: 14:30
CONCESION: El-Corcovo
YACIMIENTO: Corcovo-Mock
Derrame de hidrocarburos ■
BAJA
■
MEDIA
ALTA
X: 2552676,15 Y: 5858413,69 (Gauss-Krüger Faja 2)
Lat.: -37.4246588
Long.: -68.4049142
DESCRIPCIÓN:
Durante maniobras de rutina se detectó pérdida menor de fluido (97 % agua).

Vol. derramado: 1,5 m3
Volumen recuperado: 0 m3
Sup. Afectada: 10 m2
`,

	"comunicado_pluspetrol_02-26_fuera_de_cuenca.txt": `Planilla de Comunicación de Accidentes
COMUNICADO N°: 02-26
OPERADOR: Pluspetrol S.A.
FECHA: 20/01/2026
Lat.: -41.5000
Long.: -68.2000
DESCRIPCIÓN:
Derrame menor por falla en válvula.

Vol. derramado: 0,5 m3
`,

	"comunicado_petsud_999.txt": `N° DE COMUNICADO 999
Fecha de ocurrencia 12/2/2026
Hora de ocurrencia 15:00hs
Operador Petróleos Sudamericanos
Área operativa / concesión Área Ficticia Sur
Yacimiento Punta Mock
Tipo de instalación cañería inyeccion MOCK-191
Subtipo de incidente Crudo
Magnitud del Incidente Menor
Descripción de la rotura y afectación
La perdida se produce en Cañería conduccion MOCK-191, afecta locacion simulada.
Coordenadas x (latitud - S) 33°30'57,62"
Coordenadas y (Longitud - O) 68°38'11,93"
Concentración de hidrocarburo (ppm) Menor a 50ppm
Volumen m3 derramado 7
% AGUA DERRAMADA 100
Recursos afectados
Suelo x
`,

	"comunicado_pcr_mdz-21.txt": `Informe Preliminar de Incidente Ambiental
Petroquímica Comodoro Rivadavia S.A.
Comunicado MDZ-21-2026-Bateria-216
Concesión: Área Simulada El Sosneado
Zona: Batería 216
Fecha: 18-02-2026
Hora Estimada: 8:00
Hora de Detección: 8:30
Derrames de hidrocarburos ■
BAJO
■
MEDIO
GRAVE (>10m3)
Lat. S= 34°57´51,5" S
Long. O= 69°31´59,52" O
Descripción del accidente:
Se constata pérdida de fluido en línea de conducción de la batería.
Superficie Afectada: unos 11 m2
Volumen derramado neto de hidrocarburo: 1,1 m3 Con un 40 % de agua
Volumen recuperado neto: 0 m3
Responsable del comunicado: Inspector Mock
`,
}
